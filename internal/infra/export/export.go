// Package export writes top-track and top-artist data to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/sonify-dev/sonify/internal/domain/listening"
)

// maxGenresPerArtist limits the genres column to keep the CSV readable.
const maxGenresPerArtist = 3

// Writer exports analysis source data to CSV files under a base directory.
type Writer struct {
	dir string
}

// NewWriter creates a writer that exports into dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create export directory")
	}
	return &Writer{dir: dir}, nil
}

// Export writes the tracks and artists CSV files and returns their paths.
// The filename prefix carries a timestamp so repeated exports never clobber
// each other.
func (w *Writer) Export(tracks []listening.TrackSummary, artists []listening.ArtistSummary) ([]string, error) {
	prefix := "sonify_data_" + time.Now().Format("20060102_150405")
	var paths []string

	trackPath := filepath.Join(w.dir, prefix+"_tracks.csv")
	if err := w.writeTracks(trackPath, tracks); err != nil {
		return nil, err
	}
	paths = append(paths, trackPath)

	artistPath := filepath.Join(w.dir, prefix+"_artists.csv")
	if err := w.writeArtists(artistPath, artists); err != nil {
		return nil, err
	}
	paths = append(paths, artistPath)

	zlog.Info().Strs("files", paths).Msg("Exported listening data")
	return paths, nil
}

func (w *Writer) writeTracks(path string, tracks []listening.TrackSummary) error {
	records := [][]string{{"name", "artist", "album", "popularity", "duration"}}
	for _, t := range tracks {
		records = append(records, []string{
			t.Name,
			t.PrimaryArtist,
			t.Album,
			strconv.Itoa(t.Popularity),
			FormatDuration(t.Duration),
		})
	}
	return writeCSV(path, records)
}

func (w *Writer) writeArtists(path string, artists []listening.ArtistSummary) error {
	records := [][]string{{"name", "popularity", "genres", "followers"}}
	for _, a := range artists {
		genres := a.Genres
		if len(genres) > maxGenresPerArtist {
			genres = genres[:maxGenresPerArtist]
		}
		records = append(records, []string{
			a.Name,
			strconv.Itoa(a.Popularity),
			strings.Join(genres, ", "),
			strconv.FormatUint(uint64(a.Followers), 10),
		})
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create export file")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return errors.Wrap(err, "failed to write csv")
	}
	return nil
}

// FormatDuration renders a track duration as m:ss.
func FormatDuration(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

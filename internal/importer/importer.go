// Package importer ingests loosely-typed batches of recorded-lecture
// descriptors. Unlike single-record creation, which rejects wholesale on
// invalid input, a batch isolates failures per item and never aborts early.
package importer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dev-boi/lecture-server-go/internal/lecture"
	"github.com/dev-boi/lecture-server-go/internal/storage"
	"github.com/dev-boi/lecture-server-go/pkg/types"
)

// Candidate is one externally supplied lecture descriptor. The field names
// follow the legacy bulk payload.
type Candidate struct {
	Subject     string `json:"subject"`
	LectureName string `json:"lecture_name"`
	LectureLink string `json:"lecture_link"`
}

// Summary reports the outcome of a batch.
type Summary struct {
	Added   int
	Failed  int
	Created []lecture.RecordedLecture
}

// Importer persists as many candidates as possible through a Store.
type Importer struct {
	store  storage.Store
	logger *slog.Logger
}

// New constructs an Importer.
func New(store storage.Store, logger *slog.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

// Import converts each candidate into a recorded-lecture creation and
// persists it. A candidate fails when any of its three fields is missing,
// its subject is unrecognized, or the store rejects the insert; failures are
// counted and the batch continues.
func (i *Importer) Import(ctx context.Context, candidates []Candidate) Summary {
	summary := Summary{Created: make([]lecture.RecordedLecture, 0, len(candidates))}

	for _, candidate := range candidates {
		subject, ok := i.normalize(candidate)
		if !ok {
			summary.Failed++
			continue
		}

		rec, err := i.store.CreateRecordedLecture(ctx, lecture.CreateRecordedInput{
			Title:      strings.TrimSpace(candidate.LectureName),
			Subject:    string(subject),
			YoutubeURL: strings.TrimSpace(candidate.LectureLink),
		})
		if err != nil {
			i.logger.Warn("bulk import item failed",
				slog.String("title", candidate.LectureName),
				slog.String("error", err.Error()),
			)
			summary.Failed++
			continue
		}

		summary.Created = append(summary.Created, rec)
		summary.Added++
	}

	return summary
}

func (i *Importer) normalize(candidate Candidate) (types.Subject, bool) {
	if strings.TrimSpace(candidate.Subject) == "" ||
		strings.TrimSpace(candidate.LectureName) == "" ||
		strings.TrimSpace(candidate.LectureLink) == "" {
		return "", false
	}
	return types.ParseSubject(candidate.Subject)
}

package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/iliyamo/speaker-booking-desk/internal/analytics"
	"github.com/iliyamo/speaker-booking-desk/internal/export"
	"github.com/iliyamo/speaker-booking-desk/internal/model"
	"github.com/iliyamo/speaker-booking-desk/internal/snapshot"
)

// SnapshotSource yields the current booking snapshot.
type SnapshotSource interface {
	Current(ctx context.Context) (snapshot.Snapshot, error)
}

// Reply is one assistant exchange.
type Reply struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnalyticsService exposes the analytics core to administrators.  Questions,
// stats and charts read the snapshot feed; the CSV export reads the store so
// that it reflects changes made a moment ago.
type AnalyticsService struct {
	feed     SnapshotSource
	bookings *BookingService
}

func NewAnalyticsService(feed SnapshotSource, bookings *BookingService) *AnalyticsService {
	return &AnalyticsService{feed: feed, bookings: bookings}
}

// Questions lists the predefined assistant questions.
func (s *AnalyticsService) Questions(p model.Principal) ([]string, error) {
	if err := authorize(p, model.CapabilityViewAnalytics); err != nil {
		return nil, err
	}
	return analytics.Questions(), nil
}

// Ask answers a free-text question over the current snapshot.
func (s *AnalyticsService) Ask(ctx context.Context, p model.Principal, question string) (Reply, error) {
	if err := authorize(p, model.CapabilityViewAnalytics); err != nil {
		return Reply{}, err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, invalid("question is required")
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Question: question, Answer: analytics.Answer(question, snap.Bookings)}, nil
}

// Stats returns the status breakdown of all bookings.
func (s *AnalyticsService) Stats(ctx context.Context, p model.Principal) (analytics.StatusBreakdown, error) {
	if err := authorize(p, model.CapabilityViewAnalytics); err != nil {
		return analytics.StatusBreakdown{}, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return analytics.StatusBreakdown{}, err
	}
	return analytics.Breakdown(snap.Bookings), nil
}

// Series returns the per-event-date status series.
func (s *AnalyticsService) Series(ctx context.Context, p model.Principal) (analytics.TimeSeries, error) {
	if err := authorize(p, model.CapabilityViewAnalytics); err != nil {
		return analytics.TimeSeries{}, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return analytics.TimeSeries{}, err
	}
	return analytics.Series(snap.Bookings), nil
}

// ExportCSV writes the bookings matching filter to w.
func (s *AnalyticsService) ExportCSV(ctx context.Context, p model.Principal, filter string, w io.Writer) error {
	list, err := s.bookings.List(ctx, p, filter)
	if err != nil {
		return err
	}
	return export.WriteBookingsCSV(w, list)
}

func (s *AnalyticsService) snapshot(ctx context.Context) (snapshot.Snapshot, error) {
	snap, err := s.feed.Current(ctx)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// Package report aggregates sales and occupancy figures for staff dashboards.
package report

import (
	"sort"
	"time"

	"cinemabackend/internal/bar"
	"cinemabackend/internal/data"
)

type Service struct {
	store data.Store
}

func NewService(store data.Store) *Service {
	return &Service{store: store}
}

// SessionReport summarizes one session's sales.
type SessionReport struct {
	SessionID     int     `json:"session_id"`
	MovieID       int     `json:"movie_id"`
	MovieTitle    string  `json:"movie_title"`
	RoomID        int     `json:"room_id"`
	Date          string  `json:"date"`
	TicketsSold   int     `json:"tickets_sold"`
	Capacity      int     `json:"capacity"`
	TicketRevenue float64 `json:"ticket_revenue"`
	BarRevenue    float64 `json:"bar_revenue"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// Summary is the full sales report across all sessions.
type Summary struct {
	Sessions      []SessionReport `json:"sessions"`
	TicketsSold   int             `json:"tickets_sold"`
	TicketRevenue float64         `json:"ticket_revenue"`
	BarRevenue    float64         `json:"bar_revenue"`
	TotalRevenue  float64         `json:"total_revenue"`
}

// Range restricts the report to sessions within [From, To]. A nil bound is
// open-ended.
type Range struct {
	From *time.Time
	To   *time.Time
}

func (r Range) contains(date time.Time) bool {
	if r.From != nil && date.Before(*r.From) {
		return false
	}
	if r.To != nil && date.After(*r.To) {
		return false
	}
	return true
}

// Build walks every session in range and its tickets and produces a Summary.
func (s *Service) Build(within Range) (*Summary, error) {
	sessions, err := s.store.Sessions().List()
	if err != nil {
		return nil, err
	}
	tickets, err := s.store.Tickets().List()
	if err != nil {
		return nil, err
	}
	movies, err := s.store.Movies().List()
	if err != nil {
		return nil, err
	}
	rooms, err := s.store.Rooms().List()
	if err != nil {
		return nil, err
	}

	titles := make(map[int]string, len(movies))
	for _, m := range movies {
		titles[m.ID] = m.Title
	}
	capacities := make(map[int]int, len(rooms))
	for _, room := range rooms {
		capacities[room.ID] = gridCapacity(room.Seats)
	}

	bySession := make(map[int]*SessionReport, len(sessions))
	for _, sess := range sessions {
		if !within.contains(sess.Date) {
			continue
		}
		bySession[sess.ID] = &SessionReport{
			SessionID:  sess.ID,
			MovieID:    sess.MovieID,
			MovieTitle: titles[sess.MovieID],
			RoomID:     sess.Room,
			Date:       sess.Date.Format(data.TimeFormat),
			Capacity:   capacities[sess.Room],
		}
	}

	unbounded := within.From == nil && within.To == nil

	summary := &Summary{}
	for _, t := range tickets {
		row, ok := bySession[t.SessionID]
		if !ok {
			// Tickets for pruned sessions still count toward the
			// all-time totals, but not toward a bounded range.
			if unbounded {
				summary.TicketsSold++
				summary.TicketRevenue += t.TicketPrice
				summary.BarRevenue += t.BarTotal
			}
			continue
		}
		row.TicketsSold++
		row.TicketRevenue += t.TicketPrice
		row.BarRevenue += t.BarTotal
		summary.TicketsSold++
		summary.TicketRevenue += t.TicketPrice
		summary.BarRevenue += t.BarTotal
	}

	for _, row := range bySession {
		row.TicketRevenue = bar.RoundCents(row.TicketRevenue)
		row.BarRevenue = bar.RoundCents(row.BarRevenue)
		row.TotalRevenue = bar.RoundCents(row.TicketRevenue + row.BarRevenue)
		summary.Sessions = append(summary.Sessions, *row)
	}
	sort.Slice(summary.Sessions, func(i, j int) bool {
		return summary.Sessions[i].SessionID < summary.Sessions[j].SessionID
	})

	summary.TicketRevenue = bar.RoundCents(summary.TicketRevenue)
	summary.BarRevenue = bar.RoundCents(summary.BarRevenue)
	summary.TotalRevenue = bar.RoundCents(summary.TicketRevenue + summary.BarRevenue)
	return summary, nil
}

func gridCapacity(grid data.Grid) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell != nil {
				count++
			}
		}
	}
	return count
}

package routes

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wookrail/trainbooking/internal/domain"
	"github.com/wookrail/trainbooking/internal/railapi"
	"go.uber.org/zap"
)

type RouteUseCase interface {
	Route(ctx context.Context, trainNo string) ([]domain.RouteStop, error)
	Search(ctx context.Context, source, destination string) ([]domain.Train, error)
	RefreshTimetable(ctx context.Context) (int, error)
}

// Directory is the external route data source.
type Directory interface {
	Route(ctx context.Context, trainNo string) ([]railapi.Record, error)
	Records(ctx context.Context, limit int) ([]railapi.Record, error)
}

type Cache interface {
	GetRoute(ctx context.Context, trainNo string) ([]domain.RouteStop, error)
	SetRoute(ctx context.Context, trainNo string, route []domain.RouteStop) error
	GetSearch(ctx context.Context, source, destination string) ([]domain.Train, error)
	SetSearch(ctx context.Context, source, destination string, trains []domain.Train) error
	GetTimetable(ctx context.Context) ([]railapi.Record, error)
	SetTimetable(ctx context.Context, records []railapi.Record) error
}

type RoutesService struct {
	directory   Directory
	cache       Cache
	searchLimit int
	log         *zap.Logger
}

func NewRoutesService(directory Directory, cache Cache, searchLimit int, log *zap.Logger) *RoutesService {
	return &RoutesService{directory: directory, cache: cache, searchLimit: searchLimit, log: log}
}

// Route returns the ordered station sequence for a train number.
func (s *RoutesService) Route(ctx context.Context, trainNo string) ([]domain.RouteStop, error) {
	if trainNo == "" {
		return nil, fmt.Errorf("%w: train number is required", domain.ErrValidation)
	}

	if s.cache != nil {
		if cached, err := s.cache.GetRoute(ctx, trainNo); err == nil && cached != nil {
			return cached, nil
		}
	}

	records, err := s.directory.Route(ctx, trainNo)
	if err != nil {
		return nil, err
	}

	route := make([]domain.RouteStop, 0, len(records))
	for _, r := range records {
		seq, err := strconv.Atoi(r.Seq)
		if err != nil {
			// Malformed feed rows are skipped, not fatal.
			continue
		}
		distance, _ := strconv.ParseFloat(r.Distance, 64)
		route = append(route, domain.RouteStop{
			Seq:           seq,
			StationCode:   valueOr(r.StationCode, "N/A"),
			StationName:   valueOr(r.StationName, "N/A"),
			ArrivalTime:   valueOr(r.ArrivalTime, "-"),
			DepartureTime: valueOr(r.DepartureTime, "-"),
			DistanceKM:    distance,
		})
	}
	sort.Slice(route, func(i, j int) bool { return route[i].Seq < route[j].Seq })

	if s.cache != nil {
		_ = s.cache.SetRoute(ctx, trainNo, route)
	}
	return route, nil
}

// Search returns the trains that stop at source strictly before destination.
func (s *RoutesService) Search(ctx context.Context, source, destination string) ([]domain.Train, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	destination = strings.ToLower(strings.TrimSpace(destination))
	if source == "" || destination == "" {
		return nil, fmt.Errorf("%w: source and destination stations are required", domain.ErrValidation)
	}

	if s.cache != nil {
		if cached, err := s.cache.GetSearch(ctx, source, destination); err == nil && cached != nil {
			return cached, nil
		}
	}

	records, err := s.timetable(ctx)
	if err != nil {
		return nil, err
	}

	matched := matchTrains(records, source, destination)
	if s.cache != nil {
		_ = s.cache.SetSearch(ctx, source, destination, matched)
	}
	return matched, nil
}

// RefreshTimetable re-fetches the full dataset into the cache. Called by the
// worker on a ticker so interactive searches rarely pay for the full scan.
func (s *RoutesService) RefreshTimetable(ctx context.Context) (int, error) {
	records, err := s.directory.Records(ctx, s.searchLimit)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.SetTimetable(ctx, records); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func (s *RoutesService) timetable(ctx context.Context) ([]railapi.Record, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTimetable(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	// Full-dataset fetch; the worker keeps the cache warm so interactive
	// searches rarely land here.
	s.log.Info("fetching timetable from route directory", zap.Int("limit", s.searchLimit))
	records, err := s.directory.Records(ctx, s.searchLimit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTimetable(ctx, records)
	}
	return records, nil
}

type stop struct {
	station string
	seq     int
}

func matchTrains(records []railapi.Record, source, destination string) []domain.Train {
	type trainInfo struct {
		name  string
		stops []stop
	}
	trains := make(map[string]*trainInfo)
	for _, r := range records {
		station := strings.ToLower(strings.TrimSpace(r.StationName))
		if r.TrainNo == "" || station == "" || r.Seq == "" {
			continue
		}
		seq, err := strconv.Atoi(r.Seq)
		if err != nil {
			continue
		}

		info, ok := trains[r.TrainNo]
		if !ok {
			info = &trainInfo{name: trainName(r.TrainNo, r.TrainName)}
			trains[r.TrainNo] = info
		}
		info.stops = append(info.stops, stop{station: station, seq: seq})
	}

	matched := make([]domain.Train, 0)
	for trainNo, info := range trains {
		srcSeq, dstSeq := -1, -1
		for _, st := range info.stops {
			if st.station == source {
				srcSeq = st.seq
			}
			if st.station == destination {
				dstSeq = st.seq
			}
		}
		if srcSeq != -1 && dstSeq != -1 && srcSeq < dstSeq {
			matched = append(matched, domain.Train{TrainNo: trainNo, Name: info.name})
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].TrainNo < matched[j].TrainNo })
	return matched
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var _ RouteUseCase = (*RoutesService)(nil)

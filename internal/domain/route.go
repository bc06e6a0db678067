package domain

// RouteStop is one station on a train's route, as served by the external
// route directory.
type RouteStop struct {
	Seq           int     `json:"seq"`
	StationCode   string  `json:"station_code"`
	StationName   string  `json:"station_name"`
	ArrivalTime   string  `json:"arrival_time"`
	DepartureTime string  `json:"departure_time"`
	DistanceKM    float64 `json:"distance_km"`
}

// Train is a search result for a station-pair query.
type Train struct {
	TrainNo string `json:"train_no"`
	Name    string `json:"name"`
}

package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Players     int           // Players to create and mark for scouting
	Scouts      int           // Scouts to create
	AssignRatio float64       // Share of players that get a scout, 0..1
	ReportRatio float64       // Share of assigned players that get a report, 0..1
	Workers     int           // Concurrent requests
	Timeout     time.Duration // HTTP request timeout
	Seed        uint64        // Generator seed; equal seeds give equal plans
}

// Stats holds the outcome of a run.
type Stats struct {
	PlayersCreated    int
	ScoutsCreated     int
	Marked            int
	Assigned          int
	Reported          int
	RequestsDuplicate int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

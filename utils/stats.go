package utils

import "time"

// Stats tracks simulation throughput and population for the status line
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	Population           int
	Density              float64
	TotalGenerations     int
	Restarts             int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one generation. area is the number of cells on the grid.
func (s *Stats) Update(generation, population, area int, duration time.Duration) {
	s.TotalGenerations = generation
	s.Population = population
	if area > 0 {
		s.Density = float64(population) / float64(area) * 100
	}
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime returns how long the simulation has been running
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}

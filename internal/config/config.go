package config

import "time"

const (
	// Complaint field limits
	TitleMaxLen           = 200
	DescriptionMaxLen     = 2000
	LandmarkMaxLen        = 200
	CommentMaxLen         = 500
	ResolutionNoteMinLen  = 10
	ResolutionNoteMaxLen  = 1000
	MaxImagesPerComplaint = 5

	// Pagination
	DefaultPageLimit = 10
	MaxPageLimit     = 50

	// Allocation
	// Auto-allocation picks uniformly at random among the least-busy
	// staff pool; the pool never grows beyond this many candidates.
	AllocationPoolSize = 3

	// Analytics
	AnalyticsCacheTTL = 30 * time.Second
)

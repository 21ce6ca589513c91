package handler

import (
	"civicgrid/backend/internal/allocation"
	"civicgrid/backend/internal/analytics"
	"civicgrid/backend/internal/imagestore"
	"civicgrid/backend/internal/lifecycle"
	"civicgrid/backend/internal/storage"
)

// Handler wires the HTTP surface to the core services.
type Handler struct {
	Storage   storage.Storage
	Lifecycle *lifecycle.Manager
	Allocator *allocation.Engine
	Analytics *analytics.Aggregator
	Images    imagestore.Store
}

func NewHandler(s storage.Storage, images imagestore.Store) *Handler {
	return &Handler{
		Storage:   s,
		Lifecycle: lifecycle.NewManager(s),
		Allocator: allocation.NewEngine(s, s),
		Analytics: analytics.NewAggregator(s, s),
		Images:    images,
	}
}

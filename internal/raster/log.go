package raster

import (
	"log/slog"

	"mesh-rasterizer/internal/logging"
)

func logger() *slog.Logger {
	return logging.Logger().With("pkg", "raster")
}

package mesh

import (
	"log/slog"

	"mesh-rasterizer/internal/logging"
)

func logger() *slog.Logger {
	return logging.Logger().With("pkg", "mesh")
}

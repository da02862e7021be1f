package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/eee-uofk/coursehub/internal/app/models/dto"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
)

// HealthProber is implemented by the health repository
type HealthProber interface {
	CountRows(ctx context.Context, table string) (int64, error)
	MissingColumns(ctx context.Context, table string, columns []string) ([]string, error)
}

// HealthService reports per-table database health
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

type healthServiceImpl struct {
	prober HealthProber
}

// NewHealthService creates a new health service
func NewHealthService(prober HealthProber) HealthService {
	return &healthServiceImpl{prober: prober}
}

// Check counts rows in every table and verifies the resources columns.
// Status is "error" when any probe fails.
func (s *healthServiceImpl) Check(ctx context.Context) dto.HealthResponse {
	resp := dto.HealthResponse{Status: "ok"}
	for _, table := range repositories.HealthTables {
		th := dto.TableHealth{Table: table}
		n, err := s.prober.CountRows(ctx, table)
		if err != nil {
			th.Error = err.Error()
			resp.Status = "error"
		}
		th.Rows = n

		if err == nil && table == "resources" {
			missing, colErr := s.prober.MissingColumns(ctx, table, repositories.RequiredResourceColumns)
			switch {
			case colErr != nil:
				th.Error = colErr.Error()
				resp.Status = "error"
			case len(missing) > 0:
				th.Error = fmt.Sprintf("missing columns: %s", strings.Join(missing, ", "))
				resp.Status = "error"
			}
		}
		resp.Tables = append(resp.Tables, th)
	}
	return resp
}

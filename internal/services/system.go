package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/repos"
	"github.com/saktilink/edge-backend/internal/utils"
)

const serviceVersion = "1.0.0"

type SystemStatus struct {
	Status             string   `json:"status"`
	Mode               string   `json:"mode"`
	Version            string   `json:"version"`
	SupportedLanguages []string `json:"supported_languages"`
}

type MetricsReport struct {
	Period    string                          `json:"period"`
	Metrics   map[string]repos.MetricAggregate `json:"metrics"`
	Timestamp time.Time                       `json:"timestamp"`
}

type SyncStatus struct {
	Enabled      bool       `json:"enabled"`
	LastSync     *time.Time `json:"last_sync"`
	PendingSyncs int        `json:"pending_syncs"`
	CloudURL     string     `json:"cloud_url,omitempty"`
}

type SystemService interface {
	Status() SystemStatus
	Metrics(ctx context.Context) (*MetricsReport, error)
	SyncStatus() SyncStatus
	TriggerSync(ctx context.Context) error
}

type systemService struct {
	db          *gorm.DB
	log         *logger.Logger
	metricRepo  repos.SystemMetricRepo
	offlineMode bool
	cloudSync   bool
	cloudURL    string
}

func NewSystemService(
	db *gorm.DB,
	baseLog *logger.Logger,
	metricRepo repos.SystemMetricRepo,
) SystemService {
	serviceLog := baseLog.With("service", "SystemService")
	return &systemService{
		db:          db,
		log:         serviceLog,
		metricRepo:  metricRepo,
		offlineMode: utils.GetEnvAsBool("OFFLINE_MODE", true, serviceLog),
		cloudSync:   utils.GetEnvAsBool("ENABLE_CLOUD_SYNC", false, serviceLog),
		cloudURL:    utils.GetEnv("CLOUD_API_URL", "", serviceLog),
	}
}

func (ss *systemService) Status() SystemStatus {
	mode := "online"
	if ss.offlineMode {
		mode = "offline"
	}
	codes := make([]string, 0, len(supportedLanguages))
	for _, l := range supportedLanguages {
		codes = append(codes, l.Code)
	}
	return SystemStatus{
		Status:             "operational",
		Mode:               mode,
		Version:            serviceVersion,
		SupportedLanguages: codes,
	}
}

func (ss *systemService) Metrics(ctx context.Context) (*MetricsReport, error) {
	since := time.Now().Add(-24 * time.Hour)
	aggregates, err := ss.metricRepo.AggregateSince(ctx, nil, since)
	if err != nil {
		return nil, fmt.Errorf("aggregate metrics: %w", err)
	}
	byType := make(map[string]repos.MetricAggregate, len(aggregates))
	for _, agg := range aggregates {
		byType[agg.MetricType] = agg
	}
	return &MetricsReport{
		Period:    "24h",
		Metrics:   byType,
		Timestamp: time.Now(),
	}, nil
}

func (ss *systemService) SyncStatus() SyncStatus {
	status := SyncStatus{Enabled: ss.cloudSync}
	if ss.cloudSync {
		status.CloudURL = ss.cloudURL
	}
	return status
}

func (ss *systemService) TriggerSync(ctx context.Context) error {
	if !ss.cloudSync {
		return ErrSyncDisabled
	}
	// TODO: push pending rows to the hub once the hub sync API lands.
	ss.log.Warn("Cloud sync requested but the hub sync API is not wired yet")
	return ErrSyncUnavailable
}

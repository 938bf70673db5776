package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jwhitcraft/precast-tracker/internal/config"
	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
	"github.com/jwhitcraft/precast-tracker/internal/repository/sheets"
	"github.com/jwhitcraft/precast-tracker/internal/service/report"
	"github.com/jwhitcraft/precast-tracker/internal/service/tester"
	"github.com/jwhitcraft/precast-tracker/pkg/clients/notify"
)

// Sheet export runs Monday mornings; the digest schedule comes from config.
const sheetExportSchedule = "0 6 * * 1"

// Scheduler manages the recurring tester digest and report export jobs.
type Scheduler struct {
	cron      *cron.Cron
	testerSvc *tester.Service
	reportSvc *report.Service
	exporter  sheets.Exporter
	notifier  notify.Client
	cfg       config.Config
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance. Exporter and notifier may be
// nil; the corresponding job is skipped.
func NewScheduler(cfg config.Config, testerSvc *tester.Service, reportSvc *report.Service, exporter sheets.Exporter, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(),
		testerSvc: testerSvc,
		reportSvc: reportSvc,
		exporter:  exporter,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the enabled jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if s.notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.Digest.CronSchedule, s.sendTesterDigest); err != nil {
			s.logger.Error("failed to schedule tester digest", zap.Error(err))
		}
	}

	if s.exporter != nil {
		if _, err := s.cron.AddFunc(sheetExportSchedule, s.exportReportToSheet); err != nil {
			s.logger.Error("failed to schedule report export", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendTesterDigest() {
	s.logger.Info("building tester digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	endDate := time.Now().AddDate(0, 0, s.cfg.Digest.HorizonDays)
	rows, err := s.testerSvc.GetQueue(ctx, endDate)
	if err != nil {
		s.logger.Error("failed to build tester digest", zap.Error(err))
		return
	}

	if err := s.notifier.SendDigest(ctx, digestText(rows, time.Now())); err != nil {
		s.logger.Error("failed to send tester digest", zap.Error(err))
		return
	}
	s.logger.Info("tester digest sent", zap.Int("rows", len(rows)))
}

func (s *Scheduler) exportReportToSheet() {
	s.logger.Info("exporting concrete report to sheet")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rows, err := s.reportSvc.GetReport(ctx)
	if err != nil {
		s.logger.Error("failed to build concrete report", zap.Error(err))
		return
	}

	if err := s.exporter.AppendReportRows(ctx, rows); err != nil {
		s.logger.Error("failed to export concrete report", zap.Error(err))
		return
	}
	s.logger.Info("concrete report exported", zap.Int("rows", len(rows)))
}

// digestText summarizes the queue for the morning webhook message.
func digestText(rows []models.QueueRow, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var overdue, dueToday, upcoming int
	for _, row := range rows {
		switch {
		case row.DateDue.Before(today):
			overdue++
		case row.DateDue.Before(today.AddDate(0, 0, 1)):
			dueToday++
		default:
			upcoming++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Cylinder test queue for %s: %d overdue, %d due today, %d upcoming.",
		today.Format("Mon Jan 2"), overdue, dueToday, upcoming)

	for _, row := range rows {
		if !row.DateDue.Before(today) {
			break // sorted by due date; overdue entries come first
		}
		fmt.Fprintf(&sb, "\nOVERDUE %s (%dC) job %s, due %s",
			row.TestCylinderCode, row.DayNum, row.JobCode, row.DateDue.Format("Jan 2"))
	}

	return sb.String()
}

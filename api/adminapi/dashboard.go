package adminapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Intechlligent1/AttendanceSystem/internal/cache"
	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

const dashboardCachePeriod = 5 * time.Second

const dashboardCacheKey = "adminapi:dashboard"

type dashboardStats struct {
	TotalStudents   int64 `json:"total_students"`
	TotalAttendance int64 `json:"total_attendance"`
}

// registerDashboard wires the dashboard counters. Counts are cached briefly
// so a polling UI does not hit the store on every refresh.
func registerDashboard(r fiber.Router, backs model.Backends, statsCache cache.Cache) {
	r.Get(
		"/dashboard", func(c *fiber.Ctx) error {
			if statsCache != nil {
				var cached dashboardStats
				set, err := statsCache.Get(dashboardCacheKey, &cached)
				if err != nil {
					log.WithError(err).Error("dashboard cache read failed")
				} else if set {
					return c.JSON(cached)
				}
			}
			students, err := backs.Roster.Count()
			if err != nil {
				return errorServer(c, err)
			}
			events, err := backs.Ledger.Count()
			if err != nil {
				return errorServer(c, err)
			}
			stats := dashboardStats{
				TotalStudents:   students,
				TotalAttendance: events,
			}
			if statsCache != nil {
				if err := statsCache.Set(dashboardCacheKey, stats, dashboardCachePeriod); err != nil {
					log.WithError(err).Error("dashboard cache write failed")
				}
			}
			return c.JSON(stats)
		},
	)
}

package attendance

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// ScanResult is the outcome of resolving one badge scan. A scan either
// produced a ledger event (Registered true) or was rejected because the code
// matched no roster entry; a rejection is a normal result, not an error.
type ScanResult struct {
	Registered bool
	Name       string
	Timestamp  time.Time
}

// ScanResolver turns raw badge codes into ledger events. It keeps no state
// between invocations.
type ScanResolver struct {
	roster model.IdentityStore
	ledger model.LedgerStore

	// now supplies the event timestamp; the device-reported time is never
	// trusted. Overridable in tests.
	now func() time.Time
}

// NewScanResolver creates a ScanResolver over the passed roster and ledger.
func NewScanResolver(roster model.IdentityStore, ledger model.LedgerStore) *ScanResolver {
	return &ScanResolver{
		roster: roster,
		ledger: ledger,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Resolve normalizes the raw badge code, resolves it against the roster and,
// on success, appends an event stamped with the server clock. An empty or
// unknown code yields a rejection and no ledger write.
func (r *ScanResolver) Resolve(rawCode string) (ScanResult, error) {
	code := model.NormalizeBadgeCode(rawCode)
	if code == "" {
		return ScanResult{}, nil
	}
	identity, err := r.roster.FindByBadge(code)
	if err != nil {
		return ScanResult{}, err
	}
	if identity == nil {
		return ScanResult{}, nil
	}
	ts := r.now().UTC().Truncate(time.Second)
	if _, err = r.ledger.Append(identity.ID, ts); err != nil {
		return ScanResult{}, err
	}
	return ScanResult{
		Registered: true,
		Name:       identity.Name,
		Timestamp:  ts,
	}, nil
}

// addScanEndpoint mounts the unauthenticated ingestion endpoint used by the
// scanning device.
func (svc *Service) addScanEndpoint() {
	svc.server.Post(
		"/api/attendance", func(c *fiber.Ctx) error {
			if svc.backends.KV != nil {
				var enabled bool
				found, err := svc.backends.KV.GetAs(model.KeyValueScopeIngestion, model.KeyValueKeyEnabled, &enabled)
				if err != nil {
					log.WithError(err).Error("could not read ingestion toggle")
				} else if found && !enabled {
					return c.Status(fiber.StatusServiceUnavailable).JSON(
						fiber.Map{
							"status":  "error",
							"message": "Scanning is disabled",
						},
					)
				}
			}
			var req struct {
				CardID string `json:"card_id"`
			}
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(
					fiber.Map{
						"status":  "error",
						"message": "invalid body",
					},
				)
			}
			result, err := svc.resolver.Resolve(req.CardID)
			if err != nil {
				log.WithError(err).Error("scan resolution failed")
				return c.Status(fiber.StatusInternalServerError).JSON(
					fiber.Map{
						"status":  "error",
						"message": "internal error",
					},
				)
			}
			if !result.Registered {
				return c.Status(fiber.StatusNotFound).JSON(
					fiber.Map{
						"status":  "error",
						"message": "Card not registered",
					},
				)
			}
			return c.JSON(
				fiber.Map{
					"status":       "success",
					"message":      "Attendance recorded",
					"student_name": result.Name,
					"timestamp":    result.Timestamp.Format(model.TimestampLayout),
				},
			)
		},
	)
}

package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sevaconnect/booking-api/internal/repository"
)

// Sequence kinds used by the CRM: PAT for patients, APT for appointments.
const (
	KindPatient     = "PAT"
	KindAppointment = "APT"
)

// Generator mints CRM-format sequential codes: a 3-letter kind tag, a
// yyyymm month prefix and a 4-digit sequence, e.g. PAT2026010042. The
// sequence restarts at 0001 each calendar month.
//
// Issuance is read-then-increment and is not serialized here; two concurrent
// calls inside the same month prefix can mint the same code. Protecting this
// belongs at the storage layer without changing the string contract.
type Generator struct {
	kind  string
	codes repository.CodeLookup
}

func NewGenerator(kind string, codes repository.CodeLookup) *Generator {
	return &Generator{kind: kind, codes: codes}
}

// Next returns the next code for the month containing now. Lookup or parse
// failures degrade to a timestamp-based code so the caller can keep going;
// the CRM store being down must not block a sync that could still fail later
// for its own reasons.
func (g *Generator) Next(ctx context.Context, now time.Time) string {
	prefix := fmt.Sprintf("%s%04d%02d", g.kind, now.Year(), int(now.Month()))

	last, err := g.codes.LastCodeWithPrefix(ctx, prefix)
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("code lookup failed, using timestamp fallback")
		return g.fallback(now)
	}
	if last == "" {
		// First code of the month.
		return prefix + "0001"
	}

	seq, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
	if err != nil || seq < 0 {
		log.Warn().Str("code", last).Str("prefix", prefix).Msg("unparseable sequence code, using timestamp fallback")
		return g.fallback(now)
	}

	return fmt.Sprintf("%s%04d", prefix, seq+1)
}

func (g *Generator) fallback(now time.Time) string {
	return fmt.Sprintf("%s%d", g.kind, now.UnixMilli())
}

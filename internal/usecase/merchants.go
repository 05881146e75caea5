package usecase

import (
	"sort"

	"github.com/user/fraud-lens/internal/domain"
)

// rankMerchants groups window-eligible rows by merchant and produces the
// ranked risk table. Eligibility uses the same widened rule as the flagged
// window: own timestamp OR label timestamp >= lower. Merchants below the
// sample floor are discarded before ranking so a 1-for-1 merchant can't
// outrank a 40-in-500 one. Ordering: flag rate descending, then absolute
// flagged count descending (equal-rate merchants with more volume surface
// first), then merchant id ascending to keep the output deterministic.
func rankMerchants(rows []domain.FeedRow, lower string, minSample, limit int) []MerchantRow {
	type agg struct {
		id      int64
		name    string
		total   int
		flagged int
	}

	groups := make(map[int64]*agg)
	for _, r := range rows {
		if r.TxUTC < lower && !(r.HasLabel && r.LabeledAt >= lower) {
			continue
		}
		g, ok := groups[r.MerchantID]
		if !ok {
			g = &agg{id: r.MerchantID, name: r.MerchantName}
			groups[r.MerchantID] = g
		}
		g.total++
		if r.Flagged() {
			g.flagged++
		}
	}

	ranked := make([]*agg, 0, len(groups))
	for _, g := range groups {
		if g.total >= minSample {
			ranked = append(ranked, g)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		// Compare flagged/total rates via cross-multiplication to keep
		// ties exact; float division would blur equal ratios.
		ra, rb := a.flagged*b.total, b.flagged*a.total
		if ra != rb {
			return ra > rb
		}
		if a.flagged != b.flagged {
			return a.flagged > b.flagged
		}
		return a.id < b.id
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]MerchantRow, len(ranked))
	for i, g := range ranked {
		out[i] = MerchantRow{
			MerchantID: g.id,
			Merchant:   g.name,
			Total:      g.total,
			Flagged:    g.flagged,
			Rate:       float64(g.flagged) / float64(g.total),
		}
	}
	return out
}

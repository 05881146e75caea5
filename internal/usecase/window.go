package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/user/fraud-lens/internal/domain"
)

// aggregateWindow computes the rolling KPIs over rows already coarse-filtered
// by storage. lower is the encoded window start (anchor minus the window);
// the window is inclusive at the lower bound and unbounded above — the
// anchor is a derived floor, not a ceiling, so a row racing in ahead of
// the anchor scan still counts.
//
// Count and TotalAmount consider transaction time only. FlaggedCount uses
// the widened eligibility set: a transaction qualifies when either its own
// timestamp or its label's timestamp reaches the bound, deduplicated by
// transaction id so no transaction is counted twice.
func aggregateWindow(rows []domain.FeedRow, lower string) WindowKPIs {
	kpis := WindowKPIs{TotalAmount: decimal.Zero}
	seen := make(map[int64]struct{})

	for _, r := range rows {
		inByTx := r.TxUTC >= lower
		if inByTx {
			kpis.Count++
			kpis.TotalAmount = kpis.TotalAmount.Add(r.Amount)
		}

		inByLabel := r.HasLabel && r.LabeledAt >= lower
		if (inByTx || inByLabel) && r.Flagged() {
			if _, dup := seen[r.TxID]; !dup {
				seen[r.TxID] = struct{}{}
				kpis.FlaggedCount++
			}
		}
	}

	return kpis
}

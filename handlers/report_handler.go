package handlers

import (
	"net/http"
	"sort"
	"time"

	"gso/models"
	"gso/utils"
	"gso/valuation"
)

type depreciationResponse struct {
	PropertyNumber     string `json:"propertyNumber"`
	AsOf               string `json:"asOf"`
	AnnualDepreciation string `json:"annualDepreciation"`
	AccumulatedStart   string `json:"accumulatedStart"`
	PeriodDepreciation string `json:"periodDepreciation"`
	AccumulatedEnd     string `json:"accumulatedEnd"`
	BookValue          string `json:"bookValue"`
}

func assetInputs(a *models.Asset) valuation.Inputs {
	return valuation.Inputs{
		AcquisitionCost:  a.AcquisitionCost,
		SalvageValue:     a.SalvageValue,
		UsefulLife:       a.UsefulLife,
		ImpairmentLosses: a.ImpairmentLosses,
		AcquisitionDate:  a.AcquisitionDate,
	}
}

// AssetDepreciation returns the straight-line depreciation report for
// an asset as of ?asOf=YYYY-MM-DD (default today).
func (e *Env) AssetDepreciation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}
	asOf := time.Now()
	if s := r.URL.Query().Get("asOf"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "asOf must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}
	asset, err := e.Store.GetAsset(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	rep := valuation.AsAt(assetInputs(asset), asOf)
	utils.RespondWithJSON(w, http.StatusOK, depreciationResponse{
		PropertyNumber:     asset.PropertyNumber,
		AsOf:               asOf.Format("2006-01-02"),
		AnnualDepreciation: rep.AnnualDepreciation.StringFixed(2),
		AccumulatedStart:   rep.AccumulatedStart.StringFixed(2),
		PeriodDepreciation: rep.PeriodDepreciation.StringFixed(2),
		AccumulatedEnd:     rep.AccumulatedEnd.StringFixed(2),
		BookValue:          rep.BookValue.StringFixed(2),
	})
}

type ledgerCardRow struct {
	Date        string `json:"date"`
	Accumulated string `json:"accumulated"`
	BookValue   string `json:"bookValue"`
}

type ledgerCardResponse struct {
	PropertyNumber string          `json:"propertyNumber"`
	Description    string          `json:"description"`
	Rows           []ledgerCardRow `json:"rows"`
}

// AssetLedgerCard renders the property ledger card: depreciation
// recomputed at every history and repair date.
func (e *Env) AssetLedgerCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}
	asset, err := e.Store.GetAsset(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	dates := make([]time.Time, 0, len(asset.History)+len(asset.RepairHistory))
	for _, h := range asset.History {
		dates = append(dates, h.Date)
	}
	for _, rec := range asset.RepairHistory {
		dates = append(dates, rec.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := valuation.LedgerCard(assetInputs(asset), dates)
	out := ledgerCardResponse{
		PropertyNumber: asset.PropertyNumber,
		Description:    asset.Description,
		Rows:           make([]ledgerCardRow, 0, len(rows)),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, ledgerCardRow{
			Date:        row.Date.Format("2006-01-02"),
			Accumulated: row.Accumulated.StringFixed(2),
			BookValue:   row.BookValue.StringFixed(2),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// PropertyDepreciation is the real-property counterpart of
// AssetDepreciation.
func (e *Env) PropertyDepreciation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid property id format")
		return
	}
	asOf := time.Now()
	if s := r.URL.Query().Get("asOf"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "asOf must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}
	prop, err := e.Store.GetProperty(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	rep := valuation.AsAt(valuation.Inputs{
		AcquisitionCost:  prop.AcquisitionCost,
		SalvageValue:     prop.SalvageValue,
		UsefulLife:       prop.UsefulLife,
		ImpairmentLosses: prop.ImpairmentLosses,
		AcquisitionDate:  prop.AcquisitionDate,
	}, asOf)
	utils.RespondWithJSON(w, http.StatusOK, depreciationResponse{
		PropertyNumber:     prop.PropertyIndexNumber,
		AsOf:               asOf.Format("2006-01-02"),
		AnnualDepreciation: rep.AnnualDepreciation.StringFixed(2),
		AccumulatedStart:   rep.AccumulatedStart.StringFixed(2),
		PeriodDepreciation: rep.PeriodDepreciation.StringFixed(2),
		AccumulatedEnd:     rep.AccumulatedEnd.StringFixed(2),
		BookValue:          rep.BookValue.StringFixed(2),
	})
}

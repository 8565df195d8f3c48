package ui

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"salesboard/adapters/tabular"
	"salesboard/domain/core"
	"salesboard/domain/kpi"
	"salesboard/domain/schema"
	"salesboard/internal/errors"
	"salesboard/internal/pipeline"
	"salesboard/internal/session"
)

// handleIndex renders the upload page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":          "Sales Insights Dashboard",
		"Help":           helpHTML(),
		"RequiredFields": fieldOptions(schema.RequiredFields()),
		"OptionalFields": fieldOptions(schema.OptionalFields()),
	}
	a.renderTemplate(w, "index.html", data)
}

// fieldOption pairs a canonical field with its sidebar label
type fieldOption struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

func fieldOptions(fields []schema.Field) []fieldOption {
	options := make([]fieldOption, len(fields))
	for i, f := range fields {
		options[i] = fieldOption{Name: string(f), Label: f.Label()}
	}
	return options
}

// handleUpload accepts a CSV or Excel upload, parses it into a fresh session,
// and returns the session ID plus a column profile for the mapping screen
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(a.config.Upload.MaxFileSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("dataset")
	if err != nil {
		a.writeError(w, errors.InvalidInput("no file uploaded"))
		return
	}
	defer file.Close()

	raw, err := a.reader.Read(file, header.Filename)
	if err != nil {
		a.writeError(w, errors.Wrap(err, "failed to parse uploaded file"))
		return
	}
	if raw.RowCount() == 0 {
		a.writeError(w, errors.InvalidInput("uploaded file has no data rows"))
		return
	}

	sess := a.store.Create(header.Filename, raw)

	a.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":      sess.ID,
		"filename":        sess.Filename,
		"profile":         tabular.Profile(raw, a.config.Upload.SampleRows),
		"headers":         raw.Columns,
		"required_fields": fieldOptions(schema.RequiredFields()),
		"optional_fields": fieldOptions(schema.OptionalFields()),
	})
}

// handleMapping applies the user's column selections and runs the pipeline.
// A missing required mapping halts with a user-facing error and no metrics.
func (a *App) handleMapping(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		a.writeError(w, errors.InvalidInput("malformed mapping form"))
		return
	}

	mapping := schema.NewColumnMapping()
	all := append(schema.RequiredFields(), schema.OptionalFields()...)
	for _, field := range all {
		selected := r.FormValue(string(field))
		if selected == "" || selected == "none" {
			continue
		}
		if err := mapping.Assign(selected, field); err != nil {
			a.writeError(w, errors.Wrap(err, "invalid column mapping"))
			return
		}
	}

	sess.Mapping = mapping
	sess.Filters = pipeline.Filters{} // new mapping resets filters
	a.store.Touch(sess)

	outcome, err := a.pipe.Run(r.Context(), sess.Request())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeReport(w, sess, outcome)
}

// filtersPayload is the wire shape of a filter update
type filtersPayload struct {
	From        string              `json:"from"`
	To          string              `json:"to"`
	Categorical map[string][]string `json:"categorical"`
}

// handleFilters updates the session's date range and categorical selections
// and re-runs the pipeline
func (a *App) handleFilters(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.sessionFromRequest(w, r)
	if !ok {
		return
	}
	if sess.Mapping == nil {
		a.writeError(w, errors.ValidationError("map the required columns before filtering"))
		return
	}

	var payload filtersPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.writeError(w, errors.InvalidInput("malformed filters payload"))
		return
	}

	filters := pipeline.Filters{Categorical: make(map[schema.Field][]string)}
	if payload.From != "" {
		from, err := time.Parse("2006-01-02", payload.From)
		if err != nil {
			a.writeError(w, errors.InvalidInput("invalid 'from' date, expected YYYY-MM-DD"))
			return
		}
		filters.From = from
	}
	if payload.To != "" {
		to, err := time.Parse("2006-01-02", payload.To)
		if err != nil {
			a.writeError(w, errors.InvalidInput("invalid 'to' date, expected YYYY-MM-DD"))
			return
		}
		filters.To = to
	}
	for column, values := range payload.Categorical {
		filters.Categorical[schema.Field(column)] = values
	}

	sess.Filters = filters
	a.store.Touch(sess)

	outcome, err := a.pipe.Run(r.Context(), sess.Request())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeReport(w, sess, outcome)
}

// handleMetrics returns the scalar KPI summary for the current session state
func (a *App) handleMetrics(w http.ResponseWriter, r *http.Request) {
	_, outcome, ok := a.runSession(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, metricsResponse(outcome))
}

// handleChart returns one chart payload: monthly_revenue, sales_growth,
// correlations, or a categorical breakdown by dimension name
func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	_, outcome, ok := a.runSession(w, r)
	if !ok {
		return
	}

	kind := chi.URLParam(r, "kind")
	switch kind {
	case "monthly_revenue":
		a.writeJSON(w, http.StatusOK, seriesPayload(kind, outcome.Report.MonthlyRevenue, 1))
	case "sales_growth":
		// Growth is computed as a fraction and presented as a percentage
		a.writeJSON(w, http.StatusOK, seriesPayload(kind, outcome.Report.SalesGrowth, 100))
	case "correlations":
		a.writeJSON(w, http.StatusOK, map[string]interface{}{
			"kind":         kind,
			"correlations": outcome.Report.Correlations,
		})
	default:
		for _, breakdown := range outcome.Report.Breakdowns {
			if breakdown.Dimension == kind {
				a.writeJSON(w, http.StatusOK, map[string]interface{}{
					"kind":      "breakdown",
					"dimension": breakdown.Dimension,
					"slices":    breakdown.Slices,
				})
				return
			}
		}
		a.writeError(w, errors.NotFound(fmt.Sprintf("chart %q", kind)))
	}
}

// handleFilterOptions returns the observed date bounds and distinct values of
// every mapped categorical column, for building the filter sidebar
func (a *App) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	_, outcome, ok := a.runSession(w, r)
	if !ok {
		return
	}

	options := map[string]interface{}{}
	if min, max, found := outcome.Cleaned.TimeRange(string(schema.FieldDate)); found {
		options["date_min"] = min.Format("2006-01-02")
		options["date_max"] = max.Format("2006-01-02")
	}

	categorical := map[string][]string{}
	for _, field := range schema.CategoricalFields() {
		column := string(field)
		if outcome.Cleaned.HasColumn(column) {
			categorical[column] = outcome.Cleaned.DistinctStrings(column)
		}
	}
	options["categorical"] = categorical

	a.writeJSON(w, http.StatusOK, options)
}

// handlePreview returns the first rows of the cleaned, filtered table
func (a *App) handlePreview(w http.ResponseWriter, r *http.Request) {
	_, outcome, ok := a.runSession(w, r)
	if !ok {
		return
	}

	limit := a.config.Upload.SampleRows
	if limit > outcome.Filtered.RowCount() {
		limit = outcome.Filtered.RowCount()
	}

	rows := make([]map[string]string, limit)
	for i := 0; i < limit; i++ {
		row := make(map[string]string, outcome.Filtered.ColumnCount())
		for _, column := range outcome.Filtered.Columns {
			row[column] = outcome.Filtered.Cell(i, column).String()
		}
		rows[i] = row
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"columns":   outcome.Filtered.Columns,
		"rows":      rows,
		"row_count": outcome.Filtered.RowCount(),
	})
}

// handleDownload streams the cleaned, filtered table as a CSV attachment
func (a *App) handleDownload(w http.ResponseWriter, r *http.Request) {
	_, outcome, ok := a.runSession(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="processed_sales_data.csv"`)

	writer := csv.NewWriter(w)
	writer.Write(outcome.Filtered.Columns)
	for i := range outcome.Filtered.Rows {
		record := make([]string, len(outcome.Filtered.Columns))
		for j, column := range outcome.Filtered.Columns {
			record[j] = outcome.Filtered.Cell(i, column).String()
		}
		writer.Write(record)
	}
	writer.Flush()
}

// sessionFromRequest resolves the {id} route param to a live session
func (a *App) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := core.ParseSessionID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, errors.InvalidInput("missing session ID"))
		return nil, false
	}
	sess, err := a.store.Get(id)
	if err != nil {
		a.writeError(w, err)
		return nil, false
	}
	return sess, true
}

// runSession resolves the session and re-runs the full pipeline against its
// current state. Every interaction recomputes from the raw table.
func (a *App) runSession(w http.ResponseWriter, r *http.Request) (*session.Session, *pipeline.Outcome, bool) {
	sess, ok := a.sessionFromRequest(w, r)
	if !ok {
		return nil, nil, false
	}
	if sess.Mapping == nil {
		a.writeError(w, errors.ValidationError("map the required columns first"))
		return nil, nil, false
	}
	outcome, err := a.pipe.Run(r.Context(), sess.Request())
	if err != nil {
		a.writeError(w, err)
		return nil, nil, false
	}
	return sess, outcome, true
}

// writeReport responds with the full KPI report plus row accounting
func (a *App) writeReport(w http.ResponseWriter, sess *session.Session, outcome *pipeline.Outcome) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":    sess.ID,
		"metrics":       metricsResponse(outcome),
		"report":        outcome.Report,
		"cleaned_rows":  outcome.Cleaned.RowCount(),
		"filtered_rows": outcome.Filtered.RowCount(),
		"dropped_dates": outcome.DroppedDates,
	})
}

// metricsResponse formats the scalar KPIs for display alongside raw values
func metricsResponse(outcome *pipeline.Outcome) map[string]interface{} {
	summary := outcome.Report.Summary
	formatted := map[string]string{
		"total_revenue": formatCurrency(summary.TotalRevenue),
		"total_units":   fmt.Sprintf("%d", summary.TotalUnits),
	}
	formatted["average_discount"] = metricOrNA(summary.AverageDiscount, formatPercent)
	formatted["gross_profit"] = metricOrNA(summary.GrossProfit, formatCurrency)
	formatted["profit_margin"] = metricOrNA(summary.ProfitMargin, formatPercent)

	return map[string]interface{}{
		"summary":   summary,
		"formatted": formatted,
	}
}

// metricOrNA formats a metric or reports it unavailable
func metricOrNA(m kpi.Metric, format func(float64) string) string {
	if !m.Available {
		return "N/A"
	}
	return format(m.Value)
}

// seriesPayload renders a monthly series, scaling values for presentation
func seriesPayload(kind string, series []kpi.SeriesPoint, scale float64) map[string]interface{} {
	points := make([]map[string]interface{}, len(series))
	for i, p := range series {
		points[i] = map[string]interface{}{
			"month": p.Month.Format("2006-01"),
			"value": p.Value * scale,
		}
	}
	return map[string]interface{}{"kind": kind, "points": points}
}

// ABOUTME: Built-in dashboard profiles for HSE, coaching and clinical movement analysis.
// ABOUTME: Column names and distributions match the dashboards the operators already use.
package models

// Column names shared by the built-in profiles.
const (
	ColRiskMovements = "Movimenti a rischio"

	ColPostureTime    = "Tempo in postura scorretta (min)"
	ColLumbarForce    = "Forza zona lombare (kg)"
	ColErgoIndex      = "Indice ergonomico"
	ColFeedback       = "Feedback correttivi"
	ColCriticalEvents = "Eventi critici segnalati"

	ColPostureScore = "Postura Score"
	ColSymmetry     = "Simmetria (%)"
	ColGaitScore    = "Andatura Score"
	ColHeartRate    = "Frequenza cardiaca"

	ColDynamicBalance    = "Equilibrio Dinamico"
	ColPosturalStability = "Stabilità Posturale"
	ColStepVariation     = "Variazione Passi (%)"
)

const timestampLayout = "2006-01-02 15:04:05"

func precision(p int) *int { return &p }

// HSEProfile is the WORKSAFE PRO safety dashboard: 30 days of ergonomic data.
func HSEProfile() *Profile {
	return &Profile{
		Name:  "hse",
		Title: "WORKSAFE PRO - Dashboard Sicurezza Aziendale",
		Description: "Questa dashboard monitora in tempo reale parametri ergonomici e di sicurezza per il personale operativo: " +
			"movimenti a rischio, tempo in postura scorretta, forza lombare stimata, indice ergonomico complessivo, " +
			"frequenza di feedback correttivi, eventi critici segnalati e reportistica conforme alle normative HSE.",
		Rows:       30,
		DateLayout: "2006-01-02",
		Columns: []ColumnSpec{
			Count(ColRiskMovements, 0, 5),
			Measure(ColPostureTime, 20, 8, 1).WithUnit("min"),
			Measure(ColLumbarForce, 16, 4, 1).WithUnit("kg"),
			Measure(ColErgoIndex, 72, 10, 1),
			Count(ColFeedback, 0, 4),
			Count(ColCriticalEvents, 0, 2),
		},
		KPIs: []KPI{
			{Label: "Movimenti a rischio totali", Column: ColRiskMovements, Aggregate: AggSum},
			{Label: "Postura scorretta media (min)", Column: ColPostureTime, Aggregate: AggMean, Precision: 1},
			{Label: "Indice ergonomico medio", Column: ColErgoIndex, Aggregate: AggMean, Precision: 1},
		},
		Charts: []ChartSpec{
			{ID: "trend", Title: "Trend Sicurezza", Kind: ChartLine, Columns: []string{ColRiskMovements, ColErgoIndex}},
			{ID: "posture", Title: "Tempo in postura scorretta", Kind: ChartArea, Columns: []string{ColPostureTime}},
			{ID: "lumbar", Title: "Distribuzione Forza su zona lombare", Kind: ChartHistogram, Columns: []string{ColLumbarForce}, Bins: 20},
		},
		TableWindow: 10,
		Report: ReportSpec{
			FileBase:    "report_hse",
			Title:       "WORKSAFE PRO - Report Sicurezza",
			Description: "Report settimanale conforme alle linee guida HSE. Include analisi sintetica dei rischi e KPI ergonomici.",
			Footer:      "Generato automaticamente per finalità di compliance HSE.",
			Window:      5,
			Fields: []ReportField{
				{Label: "Rischi", Column: ColRiskMovements},
				{Label: "Postura", Column: ColPostureTime, Suffix: " min"},
				{Label: "Indice", Column: ColErgoIndex},
				{Label: "Feedback", Column: ColFeedback},
				{Label: "Eventi Critici", Column: ColCriticalEvents},
			},
		},
	}
}

// CoachProfile is the M.O.V.E. coach toolkit: three 10-day training sessions.
func CoachProfile() *Profile {
	return &Profile{
		Name:  "coach",
		Title: "M.O.V.E. - Coach Toolkit App",
		Description: "Allenatori, preparatori e fisioterapisti possono analizzare postura, simmetria, andatura e frequenza cardiaca, " +
			"ricevere alert su movimenti a rischio, confrontare sessioni ed esportare i dati in CSV e PDF.",
		Rows:       10,
		DateLayout: timestampLayout,
		Columns: []ColumnSpec{
			Measure(ColPostureScore, 75, 5, 2),
			Measure(ColSymmetry, 85, 7, 2).WithUnit("%"),
			Measure(ColGaitScore, 80, 6, 2),
			Count(ColRiskMovements, 0, 3),
			Measure(ColHeartRate, 120, 10, 2).WithUnit("bpm"),
		},
		KPIs: []KPI{
			{Label: "Postura media", Column: ColPostureScore, Aggregate: AggMean, Precision: 1},
			{Label: "Simmetria media", Column: ColSymmetry, Aggregate: AggMean, Precision: 1, Suffix: "%"},
			{Label: "Andatura media", Column: ColGaitScore, Aggregate: AggMean, Precision: 1},
			{Label: "Movimenti a rischio", Column: ColRiskMovements, Aggregate: AggSum},
		},
		Charts: []ChartSpec{
			{ID: "scores", Title: "Postura, Simmetria e Andatura", Kind: ChartLine, Columns: []string{ColPostureScore, ColSymmetry, ColGaitScore}},
			{ID: "heart-rate", Title: "Frequenza Cardiaca", Kind: ChartBar, Columns: []string{ColHeartRate}},
		},
		Sessions:       []string{"Sessione 1", "Sessione 2", "Sessione 3"},
		CompareColumns: []string{ColPostureScore, ColSymmetry, ColGaitScore},
		DefaultCompare: []string{"Sessione 1", "Sessione 2"},
		Alert: &Alert{
			Column:  ColRiskMovements,
			Message: "Sono stati rilevati movimenti a rischio durante la sessione",
		},
		Report: ReportSpec{
			FileBase:        "report",
			Title:           "Report",
			Window:          5,
			ShowGeneratedAt: true,
			Fields: []ReportField{
				{Label: "Postura", Column: ColPostureScore, Precision: precision(1)},
				{Label: "Simmetria", Column: ColSymmetry, Precision: precision(1)},
				{Label: "Andatura", Column: ColGaitScore, Precision: precision(1)},
				{Label: "FC", Column: ColHeartRate, Precision: precision(1)},
				{Label: "Rischi", Column: ColRiskMovements},
			},
		},
	}
}

// EvoProfile is the clinical movement dashboard: 30 days of gait and balance data.
func EvoProfile() *Profile {
	return &Profile{
		Name:       "evo",
		Title:      "Dashboard Sanitaria - Analisi Movimento",
		Rows:       30,
		DateLayout: timestampLayout,
		Columns: []ColumnSpec{
			Measure(ColPostureScore, 75, 7, 2),
			Measure(ColSymmetry, 90, 5, 2).WithUnit("%"),
			Measure(ColGaitScore, 85, 6, 2),
			Count(ColRiskMovements, 0, 4),
			Measure(ColDynamicBalance, 80, 8, 2),
			Measure(ColPosturalStability, 78, 6, 2),
			Measure(ColStepVariation, 5, 2, 2).WithUnit("%"),
		},
		KPIs: []KPI{
			{Label: "Postura Media", Column: ColPostureScore, Aggregate: AggMean, Precision: 1},
			{Label: "Simmetria Media", Column: ColSymmetry, Aggregate: AggMean, Precision: 1, Suffix: "%"},
			{Label: "Andatura Media", Column: ColGaitScore, Aggregate: AggMean, Precision: 1},
			{Label: "Movimenti a rischio/giorno", Column: ColRiskMovements, Aggregate: AggMean, Precision: 2},
		},
		Charts: []ChartSpec{
			{ID: "scores", Title: "Andamento Postura e Andatura", Kind: ChartLine, Columns: []string{ColPostureScore, ColGaitScore}},
			{ID: "balance", Title: "Equilibrio Dinamico e Stabilità Posturale", Kind: ChartGrouped, Columns: []string{ColDynamicBalance, ColPosturalStability}},
		},
		TableWindow: 10,
		Report: ReportSpec{
			FileBase:    "report_move",
			Title:       "Dashboard Sanitaria - Report Movimento",
			Description: "Sintesi degli indicatori clinici di postura, simmetria, andatura ed equilibrio degli ultimi giorni.",
			Window:      10,
			Fields: []ReportField{
				{Label: "Postura", Column: ColPostureScore},
				{Label: "Simmetria", Column: ColSymmetry},
				{Label: "Andatura", Column: ColGaitScore},
				{Label: "Equilibrio", Column: ColDynamicBalance},
				{Label: "Stabilità", Column: ColPosturalStability},
				{Label: "Rischi", Column: ColRiskMovements},
			},
		},
	}
}

// DefaultCatalog returns the three built-in profiles.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(HSEProfile(), CoachProfile(), EvoProfile())
	if err != nil {
		panic(err)
	}
	return c
}

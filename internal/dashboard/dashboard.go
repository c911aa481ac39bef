// ABOUTME: Builds request-scoped dashboard views from a profile catalog.
// ABOUTME: A view holds the generated table, KPIs, alert, recent rows and session comparison.
package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/harperreed/move/internal/charts"
	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/generator"
	"github.com/harperreed/move/internal/models"
	"github.com/harperreed/move/internal/summary"
)

// Options are the request parameters of a dashboard. Zero values fall back to
// the profile defaults, a random seed and the current time.
type Options struct {
	Rows    *int
	Seed    *uint64
	At      time.Time
	Session string
	Compare []string
}

// SessionSummary is the five-number summary of one column in one session.
type SessionSummary struct {
	Session string             `json:"session"`
	Summary summary.FiveNumber `json:"summary"`
}

// Comparison holds the per-session summaries of one column.
type Comparison struct {
	Column   string           `json:"column"`
	Sessions []SessionSummary `json:"sessions"`
}

// View is everything a dashboard page shows.
type View struct {
	Profile     *models.Profile
	Seed        uint64
	At          time.Time
	Rows        int
	Session     *models.Session
	Table       *models.Table
	Indicators  []summary.Indicator
	Alert       string
	Recent      *models.Table
	Compare     []string
	Comparisons []Comparison
}

// Builder generates views for the profiles of a catalog.
type Builder struct {
	catalog *models.Catalog
	now     func() time.Time
}

// NewBuilder creates a builder over catalog.
func NewBuilder(catalog *models.Catalog) *Builder {
	return &Builder{catalog: catalog, now: time.Now}
}

// Catalog returns the profiles the builder serves.
func (b *Builder) Catalog() *models.Catalog {
	return b.catalog
}

// Build resolves the profile and generates its view.
func (b *Builder) Build(name string, opts Options) (*View, error) {
	p, err := b.catalog.Get(name)
	if err != nil {
		return nil, err
	}

	v := &View{
		Profile: p,
		Seed:    generator.RandomSeed(),
		At:      opts.At,
		Rows:    p.Rows,
	}
	if opts.Seed != nil {
		v.Seed = *opts.Seed
	}
	if v.At.IsZero() {
		v.At = b.now()
	}
	v.At = v.At.Truncate(time.Second)
	if opts.Rows != nil {
		v.Rows = *opts.Rows
	}

	sessionName := opts.Session
	if p.HasSessions() && sessionName == "" {
		sessionName = p.Sessions[0]
	}
	if !p.HasSessions() && sessionName != "" {
		return nil, fmt.Errorf("%w: %q (dashboard %s has no sessions)", models.ErrUnknownSession, sessionName, p.Name)
	}

	if v.Session, err = b.session(p, v, sessionName); err != nil {
		return nil, err
	}
	v.Table = v.Session.Table

	if v.Indicators, err = summary.Indicators(v.Table, p.KPIs); err != nil {
		return nil, err
	}
	if v.Alert, err = alert(p, v.Table); err != nil {
		return nil, err
	}

	v.Recent = v.Table
	if p.TableWindow > 0 {
		v.Recent = v.Table.Recent(p.TableWindow)
	}

	if p.HasSessions() && len(p.CompareColumns) > 0 {
		v.Compare = opts.Compare
		if len(v.Compare) == 0 {
			v.Compare = p.DefaultCompare
		}
		if v.Comparisons, err = b.compare(p, v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// session generates the table of one named session, or of the whole
// dashboard when name is empty. Session i uses a seed derived from the view
// seed so every session is reproducible on its own.
func (b *Builder) session(p *models.Profile, v *View, name string) (*models.Session, error) {
	seed := v.Seed
	if name != "" {
		idx, err := p.SessionIndex(name)
		if err != nil {
			return nil, err
		}
		seed = generator.DeriveSeed(v.Seed, idx)
	}

	req := generator.FromProfile(p, v.At)
	req.Rows = v.Rows
	t, err := generator.Generate(req, generator.NewRand(seed))
	if err != nil {
		return nil, err
	}
	return models.NewSession(name, seed).WithTable(t).WithGeneratedAt(v.At), nil
}

func (b *Builder) compare(p *models.Profile, v *View) ([]Comparison, error) {
	sessions := make([]*models.Session, 0, len(v.Compare))
	for _, name := range v.Compare {
		if name == v.Session.Name {
			sessions = append(sessions, v.Session)
			continue
		}
		s, err := b.session(p, v, name)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	out := make([]Comparison, 0, len(p.CompareColumns))
	for _, col := range p.CompareColumns {
		cmp := Comparison{Column: col}
		for _, s := range sessions {
			c, ok := s.Table.Column(col)
			if !ok {
				return nil, fmt.Errorf("%w: %q", summary.ErrUnknownColumn, col)
			}
			fn, err := summary.Describe(c.Values)
			if err != nil {
				return nil, err
			}
			cmp.Sessions = append(cmp.Sessions, SessionSummary{Session: s.Name, Summary: fn})
		}
		out = append(out, cmp)
	}
	return out, nil
}

func alert(p *models.Profile, t *models.Table) (string, error) {
	if p.Alert == nil {
		return "", nil
	}
	total, err := summary.Sum(t, p.Alert.Column)
	if err != nil {
		return "", err
	}
	if total > 0 {
		return p.Alert.Message, nil
	}
	return "", nil
}

// SessionName returns the selected session, empty for dashboards without sessions.
func (v *View) SessionName() string {
	if v.Session == nil {
		return ""
	}
	return v.Session.Name
}

// Meta describes the view for exporters.
func (v *View) Meta() export.Meta {
	return export.Meta{
		Dashboard:   v.Profile.Name,
		Session:     v.SessionName(),
		Seed:        v.Seed,
		GeneratedAt: v.At,
	}
}

// FileName returns the download name of an export of this view.
func (v *View) FileName(f export.Format) string {
	return v.Profile.FileName(v.SessionName(), f.Extension())
}

// Query encodes the parameters that regenerate exactly this view.
func (v *View) Query() url.Values {
	q := url.Values{}
	q.Set("seed", strconv.FormatUint(v.Seed, 10))
	q.Set("at", strconv.FormatInt(v.At.Unix(), 10))
	q.Set("rows", strconv.Itoa(v.Rows))
	if name := v.SessionName(); name != "" {
		q.Set("session", name)
	}
	for _, s := range v.Compare {
		q.Add("compare", s)
	}
	return q
}

// ComparisonGroups returns the chart boxes of one compared column.
func (v *View) ComparisonGroups(column string) ([]charts.Group, bool) {
	for _, c := range v.Comparisons {
		if c.Column != column {
			continue
		}
		groups := make([]charts.Group, len(c.Sessions))
		for i, s := range c.Sessions {
			groups[i] = charts.Group{Name: s.Session, Summary: s.Summary}
		}
		return groups, true
	}
	return nil, false
}

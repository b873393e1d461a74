package compose

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"airmail/internal/episodes"
	"airmail/internal/mail"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const (
	newEpisodeTemplate = "new_episode.html"
	upcomingTemplate   = "upcoming.html"
)

// placeholderTBA substitutes missing titles and airdates in the upcoming
// table. The substitution is part of the observable contract: it affects
// both the email body and what the recipient sees as scheduled.
const placeholderTBA = "TBA"

// Composer renders notification subjects and HTML bodies from templates.
//
// Templates are plain placeholder substitution via text/template: no logic
// and no escaping. Summary text is already paragraph-stripped by the source
// and the upcoming fragment is pre-rendered HTML.
type Composer struct {
	newEpisode *template.Template
	upcoming   *template.Template
}

// NewComposer loads the two notification templates. Files named
// new_episode.html and upcoming.html in templateDir override the embedded
// defaults; an empty templateDir uses the defaults unconditionally.
func NewComposer(templateDir string) (*Composer, error) {
	newEp, err := loadTemplate(templateDir, newEpisodeTemplate)
	if err != nil {
		return nil, err
	}
	upcoming, err := loadTemplate(templateDir, upcomingTemplate)
	if err != nil {
		return nil, err
	}
	return &Composer{newEpisode: newEp, upcoming: upcoming}, nil
}

func loadTemplate(templateDir, name string) (*template.Template, error) {
	var text []byte
	var err error
	if templateDir != "" {
		text, err = os.ReadFile(filepath.Join(templateDir, name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
	}
	if text == nil {
		text, err = embeddedTemplates.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("load embedded template %s: %w", name, err)
		}
	}

	tmpl, err := template.New(name).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return tmpl, nil
}

type templateData struct {
	Show     string
	Title    string
	Season   int
	Episode  int
	AirDate  string
	Summary  string
	Upcoming string
}

// NewEpisode renders the "new aired episode" notification for ep, with the
// upcoming slate appended as a table fragment.
func (c *Composer) NewEpisode(show string, ep episodes.Episode, upcoming []episodes.Episode) (mail.Message, error) {
	body, err := render(c.newEpisode, templateData{
		Show:     show,
		Title:    ep.Name,
		Season:   ep.Season,
		Episode:  ep.Number,
		AirDate:  ep.AirDate,
		Summary:  ep.Summary,
		Upcoming: UpcomingTable(upcoming),
	})
	if err != nil {
		return mail.Message{}, err
	}
	return mail.Message{
		Subject: fmt.Sprintf("New %s episode: %s", show, ep.Code()),
		HTML:    body,
	}, nil
}

// UpcomingChanged renders the "upcoming slate changed" notification.
func (c *Composer) UpcomingChanged(show string, upcoming []episodes.Episode) (mail.Message, error) {
	body, err := render(c.upcoming, templateData{
		Show:     show,
		Upcoming: UpcomingTable(upcoming),
	})
	if err != nil {
		return mail.Message{}, err
	}
	return mail.Message{
		Subject: fmt.Sprintf("%s: upcoming episode schedule updated", show),
		HTML:    body,
	}, nil
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var builder strings.Builder
	if err := tmpl.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return builder.String(), nil
}

// UpcomingTable renders up to five upcoming episodes as an HTML table
// fragment, one row per episode with (SxEy, title, airdate) columns. Missing
// titles and airdates read "TBA". Empty input yields an empty fragment.
func UpcomingTable(upcoming []episodes.Episode) string {
	if len(upcoming) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("<table>\n")
	builder.WriteString("<tr><th>Episode</th><th>Title</th><th>Airdate</th></tr>\n")
	for _, ep := range upcoming {
		title := ep.Name
		if strings.TrimSpace(title) == "" {
			title = placeholderTBA
		}
		airdate := ep.AirDate
		if airdate == "" {
			airdate = placeholderTBA
		}
		fmt.Fprintf(&builder, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>\n", ep.Code(), title, airdate)
	}
	builder.WriteString("</table>")
	return builder.String()
}

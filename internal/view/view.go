// Package view renders the task list. Everything here is a pure function
// of the store phase and the list; nothing reads the store directly.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/BuzzLyutic/task-ticker/internal/model"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

const (
	emptyTitle = "All tasks completed!"
	emptyHint  = "Add a new task to get started."
	loadingMsg = "Loading tasks..."
)

type Page struct {
	Phase model.Phase
	Tasks []model.Task
	// Draft is the add-form value to show again after a rejected submit.
	Draft string
}

type pageData struct {
	Loading bool
	Tasks   []model.Task
	Pending int
	Draft   string
}

func RenderPage(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, pageData{
		Loading: p.Phase != model.Ready,
		Tasks:   p.Tasks,
		Pending: model.PendingCount(p.Tasks),
		Draft:   p.Draft,
	})
}

// RenderText writes the list for a terminal, newest first.
func RenderText(w io.Writer, phase model.Phase, tasks []model.Task) error {
	if phase != model.Ready {
		_, err := fmt.Fprintln(w, loadingMsg)
		return err
	}

	if len(tasks) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n", emptyTitle, emptyHint)
		return err
	}

	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		if _, err := fmt.Fprintf(w, "[%s] %s  %s\n", mark, t.ID, t.Text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nYou have %d pending task(s).\n", model.PendingCount(tasks))
	return err
}

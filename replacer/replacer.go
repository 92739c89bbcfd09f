//Package replacer renders the project README from a template and the
//project metadata in project.toml. Three template schemas coexist, detected
//per file: plain %%key%% placeholders, Go text/template, and a TOML
//front-matter variant whose body is in the plain schema.
package replacer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
)

//Metadata is the project description the templates draw from, the
//counterpart of the packaging metadata README generators scrape.
type Metadata struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	Author      string `toml:"author"`
	Email       string `toml:"email"`
	URL         string `toml:"url"`
	Usage       string `toml:"usage"`
	Options     string `toml:"options"`
}

//LoadMetadata reads a project.toml file.
func LoadMetadata(path string) (*Metadata, error) {
	var md Metadata
	if _, err := toml.DecodeFile(path, &md); err != nil {
		return nil, Error{fmt.Sprintf("%s: %v", path, err), []string{"LoadMetadata"}}
	}
	return &md, nil
}

//Schema identifies a template dialect.
type Schema int

const (
	//Plain templates carry %%key%% placeholders; unknown keys are left
	//intact so stray percent signs in prose survive.
	Plain Schema = iota
	//GoTemplate templates use text/template over the Metadata fields,
	//plus a codeblock helper.
	GoTemplate
	//TOMLFront templates open with a +++ ... +++ TOML block overriding
	//the metadata; the rest of the file is in the plain schema.
	TOMLFront
)

//DetectSchema guesses the dialect of a template: a +++ opener wins, then
//the {{ of text/template, and anything else is plain.
func DetectSchema(tmpl string) Schema {
	if strings.HasPrefix(tmpl, "+++\n") || tmpl == "+++" {
		return TOMLFront
	}
	if strings.Contains(tmpl, "{{") {
		return GoTemplate
	}
	return Plain
}

//Render fills the template with the metadata, after detecting its schema.
func Render(tmpl string, md *Metadata) (string, error) {
	switch DetectSchema(tmpl) {
	case TOMLFront:
		return renderTOMLFront(tmpl, md)
	case GoTemplate:
		return renderGo(tmpl, md)
	default:
		return renderPlain(tmpl, md), nil
	}
}

func (md *Metadata) fields() map[string]string {
	return map[string]string{
		"name":        md.Name,
		"version":     md.Version,
		"description": md.Description,
		"author":      md.Author,
		"email":       md.Email,
		"url":         md.URL,
		"usage":       md.Usage,
		"options":     md.Options,
	}
}

func renderPlain(tmpl string, md *Metadata) string {
	for key, val := range md.fields() {
		tmpl = strings.ReplaceAll(tmpl, "%%"+key+"%%", val)
	}
	return tmpl
}

func renderGo(tmpl string, md *Metadata) (string, error) {
	t, err := template.New("readme").Funcs(template.FuncMap{
		"codeblock": func(lang, body string) string {
			return "```" + lang + "\n" + strings.TrimRight(body, "\n") + "\n```"
		},
	}).Parse(tmpl)
	if err != nil {
		return "", Error{fmt.Sprintf("bad template: %v", err), []string{"renderGo"}}
	}
	var b strings.Builder
	if err := t.Execute(&b, md); err != nil {
		return "", Error{fmt.Sprintf("template execution: %v", err), []string{"renderGo"}}
	}
	return b.String(), nil
}

func renderTOMLFront(tmpl string, md *Metadata) (string, error) {
	rest, ok := strings.CutPrefix(tmpl, "+++\n")
	if !ok {
		return "", Error{"front matter must open with +++", []string{"renderTOMLFront"}}
	}
	front, body, ok := strings.Cut(rest, "\n+++\n")
	if !ok {
		return "", Error{"front matter never closes", []string{"renderTOMLFront"}}
	}
	over := *md
	if err := toml.Unmarshal([]byte(front), &over); err != nil {
		return "", Error{fmt.Sprintf("bad front matter: %v", err), []string{"renderTOMLFront"}}
	}
	return renderPlain(body, &over), nil
}

//Errors

type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	err.deco = append(err.deco, dec)
	return err.deco
}

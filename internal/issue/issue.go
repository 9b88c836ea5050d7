// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RouteFileNotFoundId Id = iota + 1
	RouteFileParseErrorId
	UnsupportedFormatId
	IncludeCycleId
	ConfigLoadFailedId
	PermissionDeniedId
	OutputWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	routeFileNotFoundIssue = &Issue{
		id: RouteFileNotFoundId,
		mdMsg: `
# Route file not found!

routec could not find the route file it was asked to compile.

## Things you can try:
- Pass the route file explicitly:
~~~
$ routec compile -i ./routes.yaml
~~~

- Or set a default input in your config file:
~~~cue
input: "./routes.yaml"
~~~

- Check that every ` + "`include`" + ` entry points to an existing file. Include
  paths are resolved relative to the file that declares them.`,
	}

	routeFileParseErrorIssue = &Issue{
		id: RouteFileParseErrorId,
		mdMsg: `
# Failed to parse route file!

The route file has syntax errors or does not match the route schema.

## Common issues:
- ` + "`path`" + ` must be a string or ` + "`false`" + `
- ` + "`virtual`" + `, ` + "`defaultRoute`" + ` and ` + "`redirectRoute`" + ` must be booleans
- ` + "`http`" + ` must be a string or a list of strings
- ` + "`routes`" + ` must be a list of route objects

## Example route file:
~~~yaml
method_prefix: handle_
routes:
  - path: users
    controller: users
    routes:
      - path: false
        method: handle_list
        http: GET
~~~

## Things you can try:
- Check the reported field paths, for example ` + "`routes[0].routes[1].http`" + `
- Validate your YAML, TOML, JSON or CUE syntax with a linter`,
	}

	unsupportedFormatIssue = &Issue{
		id: UnsupportedFormatId,
		mdMsg: `
# Unsupported route file format!

routec picks the decoder from the file extension.

## Supported extensions:
- ` + "`.yaml`" + `, ` + "`.yml`" + `
- ` + "`.toml`" + `
- ` + "`.json`" + `
- ` + "`.cue`" + `

## Things you can try:
- Rename the route file to one of the supported extensions`,
	}

	includeCycleIssue = &Issue{
		id: IncludeCycleId,
		mdMsg: `
# Include cycle detected!

Two or more route files include each other, so the route tree would never end.

## Things you can try:
- Follow the cycle printed above and remove one of the ` + "`include`" + ` entries
- Move shared routes into a separate file that is included by both`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The routec configuration file could not be loaded.

## Things you can try:
- Check the configuration file syntax:
~~~
$ routec config path
~~~

- Reset to the default configuration:
~~~
$ routec config init
~~~

- Show the configuration routec is actually using:
~~~
$ routec config show
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

routec does not have permission to read or write a file it needs.

## Things you can try:
- Check the permissions of the route file and every included file
- Check that the output directory is writable`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write compiled routes!

The routes compiled fine but the result could not be written.

## Things you can try:
- Check that the directory passed to ` + "`--output`" + ` exists
- Write to standard output instead and redirect it:
~~~
$ routec compile -i ./routes.yaml > routes.json
~~~`,
	}

	issues = map[Id]*Issue{
		routeFileNotFoundIssue.Id():   routeFileNotFoundIssue,
		routeFileParseErrorIssue.Id(): routeFileParseErrorIssue,
		unsupportedFormatIssue.Id():   unsupportedFormatIssue,
		includeCycleIssue.Id():        includeCycleIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
		outputWriteFailedIssue.Id():   outputWriteFailedIssue,
	}
)

// Values returns every known issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}

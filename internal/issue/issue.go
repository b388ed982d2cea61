// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Id identifies a catalog entry.
type Id int

const (
	ArchiveNotFoundId Id = iota + 1
	ArchiveCorruptId
	SourceNotSupportedId
	PackageInvalidId
	TargetNotWritableId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	// MarkdownMsg is Markdown text rendered with glamour.
	MarkdownMsg string

	// HttpLink is a URL listed under "See also".
	HttpLink string

	// Issue is a catalog entry of guidance for one class of failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the unrendered guidance.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns a copy of the related links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guidance for a terminal. stylePath is a glamour style
// name such as "dark", "light" or "notty".
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

const pluginPage HttpLink = "https://wordpress.org/plugins/all-in-one-wp-migration/"

var (
	render = glamour.Render

	archiveNotFoundIssue = &Issue{
		id: ArchiveNotFoundId,
		mdMsg: `
# Archive or directory not found!

The source path does not exist.

## Things you can try:
- Check the path for typos; relative paths start from the current directory
- List the directory that should contain the backup:
~~~
$ ls -l /path/to/backups
~~~`,
	}

	archiveCorruptIssue = &Issue{
		id: ArchiveCorruptId,
		mdMsg: `
# The archive is damaged!

The file ended before all of its content could be read, or one of its
headers is malformed. Files extracted before the damaged entry were kept.

## Things you can try:
- Download or copy the backup again; interrupted transfers are the usual cause
- Compare the file size with the original
- List the readable entries to see where the damage starts:
~~~
$ ai1wm list site.wpress
~~~`,
		extLinks: []HttpLink{pluginPage},
	}

	sourceNotSupportedIssue = &Issue{
		id: SourceNotSupportedId,
		mdMsg: `
# Unsupported source!

The source must be a regular file (to unpack) or a directory (to pack).

## Things you can try:
- Pass a .wpress file to unpack it:
~~~
$ ai1wm site.wpress ./site
~~~
- Pass a directory to pack it:
~~~
$ ai1wm ./site site.wpress
~~~`,
	}

	packageInvalidIssue = &Issue{
		id: PackageInvalidId,
		mdMsg: `
# Not a migration package!

A migration package contains package.json, database.sql and a
wp-content style tree at its root.

## Things you can try:
- Point at the directory that contains package.json
- Inspect what is there:
~~~
$ ai1wm info ./site
~~~
- Skip the check if you only need a plain archive:
~~~
$ ai1wm pack --no-validate ./dir out.wpress
~~~`,
		extLinks: []HttpLink{pluginPage},
	}

	targetNotWritableIssue = &Issue{
		id: TargetNotWritableId,
		mdMsg: `
# Cannot write the target!

A file or directory could not be created at the target path.

## Common causes:
- A file exists where a directory is needed
- The disk is full
- The parent directory is read-only`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or is invalid.

## Things you can try:
- Check the file against the schema:
~~~
$ ai1wm config show
~~~
- Recreate a default configuration:
~~~
$ ai1wm config init --force
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to read the source or write the target.

## Things you can try:
- Check ownership of the site directory, web servers often run as another user
- Unpack into a directory you own and move it afterwards`,
	}

	issues = map[Id]*Issue{
		archiveNotFoundIssue.Id():    archiveNotFoundIssue,
		archiveCorruptIssue.Id():     archiveCorruptIssue,
		sourceNotSupportedIssue.Id(): sourceNotSupportedIssue,
		packageInvalidIssue.Id():     packageInvalidIssue,
		targetNotWritableIssue.Id():  targetNotWritableIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

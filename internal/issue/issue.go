// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	UnresolvedPlatformId Id = iota + 1
	UnresolvedApplePlatformId
	UnresolvedBSDVariantId
	ToolchainProbeFailedId
	CompilerNotFoundId
	DescriptorInvalidId
	ConfigLoadFailedId
	TargetNotFoundId
)

type MarkdownMsg string

type HttpLink string

// Issue is a Markdown help page shown below an error.
type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external references on predefined macros
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the page with the glamour style at stylePath ("dark",
// "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

const (
	gccPredefinedMacros HttpLink = "https://gcc.gnu.org/onlinedocs/cpp/Common-Predefined-Macros.html"
	predefOperatingSys  HttpLink = "https://sourceforge.net/p/predef/wiki/OperatingSystems/"
)

var (
	render = glamour.Render

	unresolvedPlatformIssue = &Issue{
		id: UnresolvedPlatformId,
		mdMsg: `
# Unrecognized target platform

None of the classification rules matched the signals your toolchain reported.
The target is either exotic or the signals were collected incompletely.

## Things you can try:
- Dump the signals and check for an operating system macro:
~~~
$ targetprobe signals
~~~
- Compare against the rule cascade:
~~~
$ targetprobe explain
~~~
- Accept the target as **unknown** if your build can cope with it:
~~~
$ targetprobe classify --tolerate-unknown
~~~
  or set ` + "`classify: tolerate_unknown: true`" + ` in your config file.`,
		extLinks: []HttpLink{predefOperatingSys},
	}

	unresolvedApplePlatformIssue = &Issue{
		id: UnresolvedApplePlatformId,
		mdMsg: `
# Unrecognized Apple platform

The toolchain targets an Apple (Mach) platform, but none of
` + "`TARGET_IPHONE_SIMULATOR`, `TARGET_OS_IPHONE` or `TARGET_OS_MAC`" + ` is enabled.
Guessing the device class would produce wrongly packaged artifacts, so
classification stops here.

## Things you can try:
- Make sure the SDK ships ` + "`<TargetConditionals.h>`" + ` and that the compiler
  is pointed at it (` + "`-isysroot`" + `, ` + "`xcrun --sdk`" + `).
- For descriptors, set the device macro explicitly:
~~~cue
signals: TARGET_OS_IPHONE: "1"
~~~`,
	}

	unresolvedBSDVariantIssue = &Issue{
		id: UnresolvedBSDVariantId,
		mdMsg: `
# Unrecognized BSD variant

The toolchain defines ` + "`BSD`" + ` and a Unix macro, but none of
` + "`__FreeBSD__`, `__DragonFly__`, `__NetBSD__` or `__OpenBSD__`" + `.

## Things you can try:
- Check that the cross compiler's sysroot contains ` + "`<sys/param.h>`" + `.
- Add the variant macro to the target descriptor:
~~~toml
defines = ["__NetBSD__"]
~~~`,
		extLinks: []HttpLink{predefOperatingSys},
	}

	toolchainProbeFailedIssue = &Issue{
		id: ToolchainProbeFailedId,
		mdMsg: `
# Toolchain probe failed

The C compiler exited with an error while dumping its predefined macros
(` + "`cc -dM -E -x c -`" + `). Its standard error output is shown above.

## Things you can try:
- Run the probe by hand with the same compiler and flags.
- Check ` + "`toolchain.args`" + ` in your config for flags the compiler rejects.
- Classify from the Go host table instead:
~~~
$ targetprobe detect --host
~~~`,
		extLinks: []HttpLink{gccPredefinedMacros},
	}

	compilerNotFoundIssue = &Issue{
		id: CompilerNotFoundId,
		mdMsg: `
# C compiler not found

targetprobe could not start the C compiler. It is chosen, in order, from
` + "`toolchain.cc`" + ` in the config file, the ` + "`TARGETPROBE_TOOLCHAIN_CC`" + ` and
` + "`CC`" + ` environment variables, and finally ` + "`cc`" + `.

## Things you can try:
- Install a C compiler (gcc or clang).
- Point targetprobe at one:
~~~
$ CC=clang targetprobe detect
~~~
- Inside Flatpak or Snap the compiler must exist on the host system.`,
	}

	descriptorInvalidIssue = &Issue{
		id: DescriptorInvalidId,
		mdMsg: `
# Invalid target descriptor

A target descriptor must be a ` + "`.cue`" + ` or ` + "`.toml`" + ` file with only these keys:

~~~toml
name = "mingw64"
description = "64-bit MinGW"
defines = ["_WIN32", "_WIN64", "__MINGW32__=1"]

[signals]
_POSIX_VERSION = "200809L"
~~~

Macro names must be valid C identifiers.

## Things you can try:
- Snapshot a working toolchain into a descriptor:
~~~
$ targetprobe signals --format toml > target.toml
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file is not valid CUE or does not match the schema.

## Example configuration:
~~~cue
toolchain: {
	cc: "clang"
	args: []
}
classify: tolerate_unknown: false
targets: [
	{name: "mingw64", descriptor: "targets/mingw64.toml"},
]
ui: color_scheme: "auto"
log: level: "info"
~~~

## Things you can try:
- Print the file location:
~~~
$ targetprobe config path
~~~
- Recreate a default configuration with ` + "`targetprobe config init`" + `.`,
	}

	targetNotFoundIssue = &Issue{
		id: TargetNotFoundId,
		mdMsg: `
# Unknown target

The requested target is not listed in the ` + "`targets`" + ` section of your config file.

## Things you can try:
- List the configured targets:
~~~
$ targetprobe targets
~~~
- Classify a descriptor directly:
~~~
$ targetprobe classify --descriptor target.toml
~~~`,
	}

	issues = map[Id]*Issue{
		unresolvedPlatformIssue.Id():      unresolvedPlatformIssue,
		unresolvedApplePlatformIssue.Id(): unresolvedApplePlatformIssue,
		unresolvedBSDVariantIssue.Id():    unresolvedBSDVariantIssue,
		toolchainProbeFailedIssue.Id():    toolchainProbeFailedIssue,
		compilerNotFoundIssue.Id():        compilerNotFoundIssue,
		descriptorInvalidIssue.Id():       descriptorInvalidIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		targetNotFoundIssue.Id():          targetNotFoundIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

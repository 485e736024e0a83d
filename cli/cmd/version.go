package cmd

import (
	goruntime "runtime"
	"runtime/debug"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/advent/cli/config"
	"github.com/pithecene-io/advent/cli/render"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// VersionResponse is what `advent version` prints.
type VersionResponse struct {
	Version         string `json:"version" yaml:"version"`
	ContractVersion string `json:"contract_version" yaml:"contract_version"`
	Commit          string `json:"commit" yaml:"commit"`
	Profile         string `json:"profile" yaml:"profile"`
	GoVersion       string `json:"go_version" yaml:"go_version"`
	Platform        string `json:"platform" yaml:"platform"`
}

// VersionCommand prints build information. It reads no config or input.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Flags: ReadOnlyFlags(),
		Action: func(c *cli.Context) error {
			if err := rejectTUI(c, "version"); err != nil {
				return err
			}
			r, err := render.NewRenderer(c, config.OutputConfig{}, render.FormatTable)
			if err != nil {
				return invalidInput(err)
			}
			return r.Render(buildInfo(commit))
		},
	}
}

func buildInfo(commit string) VersionResponse {
	resp := VersionResponse{
		Version:         types.Version,
		ContractVersion: types.ContractVersion,
		Commit:          commit,
		Profile:         solution.Profile(),
		GoVersion:       goruntime.Version(),
		Platform:        goruntime.GOOS + "/" + goruntime.GOARCH,
	}
	if resp.Commit != "" && resp.Commit != "unknown" {
		return resp
	}
	// Fall back to the VCS stamp of a plain `go build`.
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				resp.Commit = s.Value
			}
		}
	}
	return resp
}

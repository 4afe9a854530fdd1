// SPDX-FileCopyrightText: 2023 The Crossplane Authors <https://crossplane.io>
//
// SPDX-License-Identifier: Apache-2.0

// Package main is a thin CLI over the embedded Terraform library, mainly
// useful for smoke-testing a freshly built shared object.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/crossplane-contrib/libtf/pkg/args"
	"github.com/crossplane-contrib/libtf/pkg/config"
	"github.com/crossplane-contrib/libtf/pkg/json"
	"github.com/crossplane-contrib/libtf/pkg/native"
	"github.com/crossplane-contrib/libtf/pkg/terraform"
)

var (
	app = kingpin.New("libtf", "Drives the linked Terraform library without spawning a terraform binary")

	runCmd   = app.Command("run", "Run an arbitrary Terraform subcommand in-process")
	runChdir = runCmd.Flag("chdir", "Working directory passed via the global -chdir argument").String()
	runMode  = runCmd.Flag("mode", "Decoding applied to stdout").Default("raw").Enum("raw", "json", "json-stream")
	runCheck = runCmd.Flag("check", "Fail on a non-zero exit code instead of passing it through").Bool()
	runArgv  = runCmd.Arg("argv", "Subcommand and its arguments, e.g. 'plan -json'").Required().Strings()

	configCmd     = app.Command("config", "Work with configuration directories")
	configLoadCmd = configCmd.Command("load", "Parse a configuration directory and print it as JSON")
	configLoadDir = configLoadCmd.Arg("dir", "Directory holding .tf files").Required().String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	lib, err := native.NewLibrary()
	kingpin.FatalIfError(err, "Cannot bind the Terraform library")

	switch command {
	case runCmd.FullCommand():
		kingpin.FatalIfError(runRun(lib), "Failed to run the command")
	case configLoadCmd.FullCommand():
		kingpin.FatalIfError(runConfigLoad(lib), "Failed to load the configuration directory")
	}
}

func runRun(lib *native.Library) error {
	tf := terraform.New(native.NewGateway(lib), terraform.WithDir(*runChdir))
	mode := json.ModeRaw
	switch *runMode {
	case "json":
		mode = json.ModeJSON
	case "json-stream":
		mode = json.ModeJSONStream
	}
	argv := *runArgv
	res, err := tf.Run(argv[:1], argv[1:], args.NewOptions(), mode, *runCheck)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, res.Stderr)
	if res.JSON {
		out, err := json.JSParser.MarshalIndent(res.Value, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		fmt.Print(res.Stdout)
	}
	os.Exit(int(res.Code))
	return nil
}

func runConfigLoad(lib *native.Library) error {
	mod, diags, err := config.Load(lib, *configLoadDir)
	if err != nil {
		return err
	}
	out, err := json.JSParser.MarshalIndent(map[string]interface{}{
		"module":      mod,
		"diagnostics": diags,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// Package github provides an HTTP client for the GitHub API.
//
// # Overview
//
// This package fetches Swift package repository metadata, documentation,
// and example code from GitHub (https://api.github.com). It serves as the
// remote half of documentation resolution: when a package cannot be
// resolved from local build products, its repository is consulted here.
//
// # Usage
//
//	client := github.NewClient(token)
//
//	meta, err := client.FetchRepositoryInfo(ctx, "https://github.com/vapor/vapor")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Stars:", meta.Stars)
//
// # Transport Selection
//
// When the gh CLI is installed and authenticated, metadata and listing
// calls are routed through `gh api`, which reuses the user's credentials
// and their rate limits. Availability is probed per call with a bounded
// timeout and never cached; any probe failure silently selects the direct
// REST API. Raw content fetches always use the REST API.
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid
// rate limits. Without a token, the direct API is limited to 60
// requests/hour. With a token, the limit is 5000 requests/hour.
//
// # Documentation Discovery
//
// [Client.FetchDocumentation] tries sources strictly in order and returns
// the first non-empty one: the README at the default branch, the README at
// the conventional secondary branch, the first markdown file inside a DocC
// catalog, then any other markdown file. A repository with none of these
// yields a docs-not-found error, never an empty artifact.
//
// # Example Discovery
//
// [Client.FindExamples] lists the repository tree once and filters it
// against a fixed set of conventional example locations (Examples, Demos,
// Samples, Tests and their variants) before fetching file contents up to
// the requested limit.
//
// # URL Parsing
//
// [ParseSourceURL] extracts owner and repository from package source URLs,
// handling https, scp-style git@, and git:// forms. Invalid URLs fail
// before any network I/O.
package github

// Package scan locates documentation for Swift packages already
// present on the local filesystem, before any network lookup.
//
// # Search Tiers
//
// [Scanner.FindLocalDocumentation] tries four locations in order and
// stops at the first hit:
//
//  1. SwiftPM dependency checkouts under <project>/.build/checkouts.
//  2. Generated DocC archives under the project's build-product
//     directories (debug/release, including per-triple layouts).
//  3. The process-wide SwiftPM clone cache under
//     <user-cache-dir>/org.swift.swiftpm/repositories.
//  4. Xcode DerivedData build products.
//
// Within a matched directory a generated *.doccarchive is preferred,
// then a *.docc catalog, then a plain README. A DocC archive is
// previewed from its JSON page index when possible, otherwise the
// artifact points at the archive's rendered HTML entry point.
//
// # Error Tolerance
//
// A miss at every tier returns (nil, nil); local documentation being
// absent is the common case, not a failure. Permission errors and
// other unreadable entries are skipped without aborting the scan, and
// directory walks do not follow symlinks, so link cycles cannot hang
// a scan. The only error the scanner reports is context cancellation.
package scan

// Package compiler turns directive manifests into normalized compile metadata.
//
// Main sub-packages:
//
//   - core: closed enums (ChangeDetectionStrategy, ViewEncapsulation, LifecycleHooks)
//   - metadata: type, template and directive descriptors, host and binding normalization,
//     host component synthesis, structural records
//   - css: selector parsing and matching
//   - manifest: JSON, YAML and TOML directive manifests
//   - summary: on-disk directive summaries
//   - config, logging: compiler configuration and zap loggers
//
// Compiler ties them together: it loads manifests, normalizes their directives
// concurrently, synthesizes host components and writes summaries.
package compiler

// SPDX-License-Identifier: MIT

// Package observe provides calibrate.Observer implementations: Prometheus
// metrics, rate-limited progress logging, and a fan-out combinator.
package observe

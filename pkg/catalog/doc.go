/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package catalog is a built-in reference of Linux performance diagnostic
// one-liners, grouped by resource (CPU, memory, I/O, network, timekeeping)
// and filterable by category or keyword.
package catalog

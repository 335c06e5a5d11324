/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the kairos command line interface: check,
// snapshot, audit, and catalog commands over the advisor, snapshotter,
// sysctl, and catalog packages.
package cli

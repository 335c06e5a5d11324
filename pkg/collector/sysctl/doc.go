/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package sysctl collects the live values of the kernel parameters in the
// built-in tuning reference, so a snapshot carries enough state to audit
// later or on another machine.
package sysctl

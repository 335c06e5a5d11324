// Package collector defines the collector contract and the factory that
// wires production collectors together.
//
// Each collector gathers one category of host facts (clock source
// configuration, time sync service state, sysctl values) into a
// measurement. The Factory interface enables dependency injection so the
// snapshotter can be tested with fake collectors.
package collector

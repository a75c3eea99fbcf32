// Package model defines the data structures shared by the effbatt packages.
//
// This package contains the following main types:
//   - State: the single application snapshot (operator, live instruments, sites)
//   - Site: a technical site (sede) with its work order and up to eight vehicles
//   - Vehicle: one vehicle under verification with its measurement record
//   - MeasurementData: battery packs, voltage/current checkpoints, density readings
//   - Report: the immutable history record written after every generation
//   - InstrumentTemplate: a saved instrument configuration that can be applied later
//
// Models carry data and the structural invariants of the state (site capacity,
// cascade deletes, the monotonic shared flag). Field-level rules live in the
// validation package so they can be evaluated without touching state.
//
// All types are serializable to JSON for database storage.
package model

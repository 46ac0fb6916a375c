// Package domain models VIIRS active-fire detections for Indonesia.
//
// # Data Source
//
// Detections come from the NASA FIRMS archive for the Visible Infrared
// Imaging Radiometer Suite (VIIRS) on Suomi-NPP and NOAA-20, clipped to
// Indonesia and annotated with the province each hotspot falls in. The
// extract is a single CSV read once at startup.
//
// # VIIRS Data Conventions
//
// Date format:
//
//	acq_date is YYYY-MM-DD, e.g. "2020-09-14". Any other shape is malformed.
//
// Time format:
//
//	acq_time is HHMM in UTC. FIRMS drops leading zeros, so "530" means 05:30
//	and is padded to "0530".
//
// Confidence codes:
//
//	l → Low, n → Nominal, h → High. See [ConfidenceLabel].
//
// Fire Radiative Power:
//
//	frp is in megawatts and drives map coloring.
//
// Day/night flag:
//
//	daynight is "D" or "N".
//
// # Retention
//
// Only detections acquired in 2020 or 2021 are kept (see [DefaultYears]).
// The resulting [Baseline] is immutable; per-year views are fresh copies made
// by [Baseline.FilterYear].
//
// # ID Generation
//
// Detection IDs are deterministic SHA-256 hashes of date|time|lat|lon|frp so the
// optional Kafka feed can be replayed idempotently. See [generateID].
package domain

// Package domain models TEMPDROP dropsonde messages and their decoded form.
//
// # Data source
//
// TEMPDROP messages are coded radio transmissions from reconnaissance
// aircraft dropsondes, relayed through stations such as KNHC and KWBC. A
// message file is named by its cycle timestamp plus the station suffix,
// e.g. 202409181200.KNHC, and contains the verbatim coded groups.
//
// # Location markers
//
// Somewhere in the message free text the sonde's endpoints are reported:
//
//	REL 2134N07212W 151712   release point and time
//	SPG 2130N07215W 152430   splash point (water) and time
//	SPL ...                  splash point (land) and time
//
// The location token packs latitude and longitude as degrees x 100 with
// hemisphere letters. By the historical HSA convention southern latitudes
// and eastern longitudes are negated, so "2134N07212W" decodes to
// (21.34, 72.12) and "0789E" to longitude -7.89. The convention is
// configurable because it is inverted relative to modern usage; see
// [ParseObsLocation].
//
// Markers may be absent. A missing REL or SPG only becomes an error when
// drift correction is requested, since the advected trajectory is
// normalized onto the REL-SPG span.
//
// # Level records
//
// The external decode routine emits one whitespace-delimited line per
// vertical level, in the column order fixed by the level-record schema.
// The missing-data sentinel (-99.0) is replaced with NaN during profile
// building, and levels are retained only when their flag is a recognized
// type ("manl" mandatory, "sigl" significant) and their pressure lies
// below the 1070 hPa surface sentinel.
package domain

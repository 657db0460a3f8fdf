package canon

import (
    "regexp"
    "strings"
)

var rePunct = regexp.MustCompile(`[^A-Za-z0-9\s]`)

// Placeholder used when a provider supplied no street address at all.
// Malformed records from different sources share it so they collapse to a
// single entry during dedup instead of piling up as indistinguishable junk.
const MissingAddress = "address not available"

// DedupeKey derives the cross-source identity key for a listing: normalized
// street address plus ZIP5, lowercased. Two records with the same key are
// treated as the same physical property.
func DedupeKey(address, zip string) string {
    line := NormalizeLine(address)
    if line == "" {
        line = strings.ToUpper(MissingAddress)
    }
    return strings.ToLower(line + "|" + TrimZIP(zip))
}

// NormalizeLine canonicalizes a street address line: uppercase, unit
// designators stripped, punctuation removed, USPS-style suffix abbreviation,
// single spaces. It intentionally ignores unit/suite to stabilize identity
// per parcel.
func NormalizeLine(line string) string {
    n := strings.TrimSpace(strings.ToUpper(line))
    n = stripUnit(n)
    n = rePunct.ReplaceAllString(n, " ")
    n = abbreviateSuffix(n)
    return collapseSpaces(n)
}

// NormalizeState upcases and abbreviates a spelled-out US state name.
func NormalizeState(state string) string {
    st := strings.ToUpper(strings.TrimSpace(state))
    if len(st) > 2 { st = stateAbbrev(st) }
    return st
}

func collapseSpaces(s string) string {
    return strings.Join(strings.Fields(s), " ")
}

// TrimZIP reduces ZIP+4 forms to the 5-digit prefix.
func TrimZIP(z string) string {
    z = strings.TrimSpace(z)
    if len(z) >= 5 { return z[:5] }
    return z
}

func stripUnit(s string) string {
    // Remove trailing unit designators like APT, UNIT, STE, SUITE, #
    toks := []string{" APT ", " UNIT ", " STE ", " SUITE ", " #"}
    up := " " + s + " "
    for _, t := range toks {
        if i := strings.Index(up, t); i >= 0 {
            return strings.TrimSpace(up[:i])
        }
    }
    return strings.TrimSpace(s)
}

func abbreviateSuffix(s string) string {
    // Basic USPS-style suffix normalization
    repl := map[string]string{
        " STREET": " ST",
        " ROAD": " RD",
        " AVENUE": " AVE",
        " BOULEVARD": " BLVD",
        " DRIVE": " DR",
        " LANE": " LN",
        " COURT": " CT",
        " CIRCLE": " CIR",
        " TERRACE": " TER",
        " PLACE": " PL",
        " PARKWAY": " PKWY",
        " HIGHWAY": " HWY",
    }
    out := s
    for k, v := range repl { out = strings.ReplaceAll(out, k, v) }
    return out
}

func stateAbbrev(s string) string {
    m := map[string]string{
        "ALABAMA":"AL","ALASKA":"AK","ARIZONA":"AZ","ARKANSAS":"AR","CALIFORNIA":"CA","COLORADO":"CO","CONNECTICUT":"CT","DELAWARE":"DE","FLORIDA":"FL","GEORGIA":"GA","HAWAII":"HI","IDAHO":"ID","ILLINOIS":"IL","INDIANA":"IN","IOWA":"IA","KANSAS":"KS","KENTUCKY":"KY","LOUISIANA":"LA","MAINE":"ME","MARYLAND":"MD","MASSACHUSETTS":"MA","MICHIGAN":"MI","MINNESOTA":"MN","MISSISSIPPI":"MS","MISSOURI":"MO","MONTANA":"MT","NEBRASKA":"NE","NEVADA":"NV","NEW HAMPSHIRE":"NH","NEW JERSEY":"NJ","NEW MEXICO":"NM","NEW YORK":"NY","NORTH CAROLINA":"NC","NORTH DAKOTA":"ND","OHIO":"OH","OKLAHOMA":"OK","OREGON":"OR","PENNSYLVANIA":"PA","RHODE ISLAND":"RI","SOUTH CAROLINA":"SC","SOUTH DAKOTA":"SD","TENNESSEE":"TN","TEXAS":"TX","UTAH":"UT","VERMONT":"VT","VIRGINIA":"VA","WASHINGTON":"WA","WEST VIRGINIA":"WV","WISCONSIN":"WI","WYOMING":"WY",
    }
    if v, ok := m[s]; ok { return v }
    return s
}

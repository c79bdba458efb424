// seed_gst generates the SQL script that populates the GST state master
// (the two-digit state codes GSTINs embed) used to resolve party states.
//
// Usage: go run ./cmd/seed_gst [output.sql]
// Writes internal/infrastructure/postgres/migrations/010_seed_gst_states.sql
// by default.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Census state codes per the GSTIN format notification.
var states = map[string]string{
	"01": "Jammu and Kashmir", "02": "Himachal Pradesh", "03": "Punjab",
	"04": "Chandigarh", "05": "Uttarakhand", "06": "Haryana",
	"07": "Delhi", "08": "Rajasthan", "09": "Uttar Pradesh",
	"10": "Bihar", "11": "Sikkim", "12": "Arunachal Pradesh",
	"13": "Nagaland", "14": "Manipur", "15": "Mizoram",
	"16": "Tripura", "17": "Meghalaya", "18": "Assam",
	"19": "West Bengal", "20": "Jharkhand", "21": "Odisha",
	"22": "Chhattisgarh", "23": "Madhya Pradesh", "24": "Gujarat",
	"26": "Dadra and Nagar Haveli and Daman and Diu", "27": "Maharashtra",
	"28": "Andhra Pradesh (old)", "29": "Karnataka", "30": "Goa",
	"31": "Lakshadweep", "32": "Kerala", "33": "Tamil Nadu",
	"34": "Puducherry", "35": "Andaman and Nicobar Islands",
	"36": "Telangana", "37": "Andhra Pradesh", "38": "Ladakh",
	"97": "Other Territory",
}

func main() {
	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "010_seed_gst_states.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	codes := make([]string, 0, len(states))
	for c := range states {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	var b strings.Builder
	b.WriteString("-- GST state master, generated by cmd/seed_gst. Do not edit by hand.\n")
	b.WriteString("CREATE TABLE IF NOT EXISTS gst_states (\n")
	b.WriteString("    code CHAR(2) PRIMARY KEY,\n")
	b.WriteString("    name TEXT NOT NULL\n")
	b.WriteString(");\n\n")
	for _, c := range codes {
		fmt.Fprintf(&b, "INSERT INTO gst_states (code, name) VALUES ('%s', '%s')\n", c, strings.ReplaceAll(states[c], "'", "''"))
		b.WriteString("    ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name;\n")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d states)\n", outPath, len(codes))
}

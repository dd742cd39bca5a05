// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package imports parses uploaded bank statements into expense rows.

# Formats

  - .csv: first row is the header. A UTF-8 byte order mark is ignored.
  - .xlsx: the first sheet is read with the same header rules.

Recognised columns are date, description, category and amount, matched
case-insensitively. Missing descriptions become "Unknown" and missing
categories "Uncategorized".

# Amounts

Amounts may carry the taka sign, "BDT" and thousands separators:

	imports.ParseAmount("৳1,250.50") // 1250.5

Anything that still fails to parse counts as 0 rather than rejecting the
whole file.

# Size Limit

	if err := imports.ValidateSize(header.Size, cfg.MaxImportMB); err != nil {
		// errors.Is(err, imports.ErrTooLarge)
	}
*/
package imports

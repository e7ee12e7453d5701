// File: utils/constants.go
package utils

// UnknownName is the sentinel used when the customer name cannot be extracted.
const UnknownName = "N/A"

// UnknownStudio is the sentinel used when the studio label cannot be extracted.
const UnknownStudio = "不明"

// JudgmentLogLimit bounds the judgment log to the most recent entries.
const JudgmentLogLimit = 200

// SubjectPreviewLimit bounds the stored subject preview length in runes.
const SubjectPreviewLimit = 120

package reverse

import (
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/slimtoolkit/dfimage/pkg/docker/instruction"
)

const (
	nopMarker         = "#(nop)"
	instPrefixRun     = "RUN "
	instPrefixFrom    = "FROM "
	noInstructionInfo = "# no instruction info"
	noBaseImage       = "<base image not found locally>"

	andOperator          = "&&"
	andOperatorMultiLine = "\\\n    &&"
)

const (
	instTypeFrom = "FROM"
	instTypeNone = "NONE"
)

// InstructionInfo describes one reconstructed Dockerfile instruction
type InstructionInfo struct {
	Type       string   `json:"type"`
	CommandAll string   `json:"command_all"`
	RawCommand string   `json:"raw_command,omitempty"`
	IsNop      bool     `json:"is_nop"`
	Time       string   `json:"time,omitempty"`
	Size       int64    `json:"size"`
	SizeHuman  string   `json:"size_human,omitempty"`
	Comment    string   `json:"comment,omitempty"`
	RawTags    []string `json:"raw_tags,omitempty"`
}

func hasKeyword(raw string) bool {
	_, found := instruction.Keyword(raw)
	return found
}

// isMetadataStep is true for the config only build steps
// (classic '#(nop)' records and BuildKit records for metadata instructions)
func isMetadataStep(raw string) bool {
	if strings.Contains(raw, nopMarker) {
		return true
	}

	keyword, found := instruction.Keyword(raw)
	return found && instruction.Specs[strings.ToLower(keyword)].IsMetadata
}

// FormatInstruction converts a raw history 'CreatedBy' value to a Dockerfile instruction.
//
// Metadata-only steps ('#(nop)') already have the instruction keyword after the marker.
// Everything else is a shell step and gets the RUN keyword unless it already has
// an instruction prefix (BuildKit history records) or it's a comment.
// The '&&' operators are moved to their own lines.
func FormatInstruction(raw string) string {
	var inst string
	switch {
	case strings.Contains(raw, nopMarker):
		inst = raw[strings.Index(raw, nopMarker)+len(nopMarker):]
	case strings.TrimSpace(raw) == "":
		return noInstructionInfo
	case hasKeyword(raw),
		strings.HasPrefix(strings.TrimSpace(raw), "#"):
		inst = raw
	default:
		inst = instPrefixRun + raw
	}

	inst = strings.ReplaceAll(inst, andOperator, andOperatorMultiLine)
	inst = strings.TrimSpace(inst)
	if inst == "" {
		return noInstructionInfo
	}

	return inst
}

// FromInstruction returns the FROM line for the base image (if it's known)
func FromInstruction(base string) string {
	if base == "" {
		return instPrefixFrom + noBaseImage
	}

	return instPrefixFrom + base
}

func newInstructionInfo(entry HistoryEntry) *InstructionInfo {
	info := &InstructionInfo{
		CommandAll: FormatInstruction(entry.CreatedBy),
		RawCommand: entry.CreatedBy,
		IsNop:      isMetadataStep(entry.CreatedBy),
		Size:       entry.Size,
		Comment:    entry.Comment,
		RawTags:    entry.Tags,
	}

	if entry.Created > 0 {
		info.Time = time.Unix(entry.Created, 0).UTC().Format(time.RFC3339)
	}

	if info.Size > 0 {
		info.SizeHuman = humanize.Bytes(uint64(info.Size))
	}

	info.Type = instTypeNone
	if !strings.HasPrefix(info.CommandAll, "#") {
		info.Type = strings.SplitN(info.CommandAll, " ", 2)[0]
	}

	return info
}

// truncationMarker returns the newest 'CreatedBy' value of the base image.
// It's not an error if the base image history is not available (the full target history is used then).
func truncationMarker(base string, historyOf HistoryFunc) (string, bool) {
	if base == "" || historyOf == nil {
		return "", false
	}

	history, err := historyOf(base)
	if err != nil {
		log.WithError(err).WithField("base", base).
			Warn("reverse: base image history not available (not removing the base image instructions)")
		return "", false
	}

	if len(history) == 0 || history[0].CreatedBy == "" {
		return "", false
	}

	return history[0].CreatedBy, true
}

func newestFirstInstructions(targetHistory []HistoryEntry, base string, historyOf HistoryFunc) []*InstructionInfo {
	marker, hasMarker := truncationMarker(base, historyOf)

	instructions := make([]*InstructionInfo, 0, len(targetHistory)+1)
	for _, entry := range targetHistory {
		//NOTE: matching by the raw command text because history records don't have the layer IDs
		if hasMarker && entry.CreatedBy == marker {
			break
		}

		instructions = append(instructions, newInstructionInfo(entry))
	}

	return append(instructions, &InstructionInfo{
		Type:       instTypeFrom,
		CommandAll: FromInstruction(base),
	})
}

// ReconstructInstructions creates the instruction list (oldest first, starting with FROM)
// from the target image history, excluding the instructions inherited from the base image
func ReconstructInstructions(targetHistory []HistoryEntry, base string, historyOf HistoryFunc) []*InstructionInfo {
	instructions := newestFirstInstructions(targetHistory, base, historyOf)
	slices.Reverse(instructions)
	return instructions
}

// NewestFirst returns the instruction lines in the history order (newest first, ending with FROM)
func NewestFirst(targetHistory []HistoryEntry, base string, historyOf HistoryFunc) []string {
	return lines(newestFirstInstructions(targetHistory, base, historyOf))
}

// Reconstruct returns the Dockerfile lines (oldest first, starting with FROM)
func Reconstruct(targetHistory []HistoryEntry, base string, historyOf HistoryFunc) []string {
	return lines(ReconstructInstructions(targetHistory, base, historyOf))
}

func lines(instructions []*InstructionInfo) []string {
	out := make([]string, 0, len(instructions))
	for _, inst := range instructions {
		out = append(out, inst.CommandAll)
	}

	return out
}

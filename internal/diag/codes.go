package diag

import "fmt"

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Синтаксис строки: группы повторов
	SynInfo               Code = 2000
	SynUnterminatedRepeat Code = 2001
	SynMissingRepeatCount Code = 2002

	// Структура узора и словарь петель
	PatInfo          Code = 3000
	PatEmpty         Code = 3001
	PatUnevenRows    Code = 3002
	PatUnknownStitch Code = 3003
	PatTooLarge      Code = 3004

	IOLoadFileError Code = 4001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	SynInfo:               "Syntax information",
	SynUnterminatedRepeat: "Unterminated repeat group",
	SynMissingRepeatCount: "Missing repeat count",
	PatInfo:               "Pattern information",
	PatEmpty:              "Empty pattern",
	PatUnevenRows:         "Rows have different stitch counts",
	PatUnknownStitch:      "Unrecognized stitch abbreviation",
	PatTooLarge:           "Pattern expands beyond the token limit",
	IOLoadFileError:       "I/O load file error",
	ObsInfo:               "Observability information",
	ObsTimings:            "Pipeline timings",
}

// ID returns the stable short identifier, e.g. "PAT3003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PAT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package rules

// Code sets for the coded fields of the return. Membership is exact; codes
// are compared after the shredder's trim/NFC normalization.

var genderCodes = set("0", "1", "2", "9")

var upnUnknownCodes = set("UN1", "UN2", "UN3", "UN4", "UN5", "UN6", "UN7")

var ethnicityCodes = set(
	"WBRI", "WIRI", "WIRT", "WOTH", "WROM",
	"MWBC", "MWBA", "MWAS", "MOTH",
	"AIND", "APKN", "ABAN", "AOTH", "CHNE",
	"BCRB", "BAFR", "BOTH",
	"OOTH", "REFU", "NOBT",
)

var disabilityCodes = set(
	"NONE", "MOB", "HAND", "PC", "INC", "COMM", "LD",
	"HEAR", "VIS", "BEH", "CON", "AUT", "DDA",
)

var referralSourceCodes = set(
	"1A", "1B", "1C", "1D",
	"2A", "2B",
	"3A", "3B", "3C", "3D", "3E", "3F",
	"4", "5A", "5B", "5C", "5D",
	"6", "7", "8", "9", "10",
)

var primaryNeedCodes = set("N1", "N2", "N3", "N4", "N5", "N6", "N7", "N8", "N9")

var closureReasonCodes = set("RC1", "RC2", "RC3", "RC4", "RC5", "RC6", "RC7", "RC8")

var abuseCategoryCodes = set("NEG", "PHY", "SAB", "EMO", "MUL")

var assessmentFactorCodes = set(
	"1A", "1B", "1C",
	"2A", "2B", "2C",
	"3A", "3B", "3C",
	"4A", "4B", "4C",
	"5A", "5B", "5C",
	"6A", "6B", "6C",
	"7A", "8B", "8C", "8D", "8E", "8F",
	"9A", "10A", "11A", "12A", "13A", "14A", "15A", "16A", "17A",
	"18B", "18C", "19B", "19C", "20", "21", "22A", "23A", "24A",
)

func set(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}

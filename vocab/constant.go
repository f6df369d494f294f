package vocab

// Reserved word ids. PadId must stay 0: padded tensors are zero filled.
const (
	PadId = 0
	UnkId = 1

	PadToken = "<PAD>"
	UnkToken = "<UNK>"
)

// Entity token prefixes used to anonymize subject and object spans.
const (
	SubjPrefix = "SUBJ-"
	ObjPrefix  = "OBJ-"
)

// SubjNerTypes and ObjNerTypes are the entity types of the TACRED schema.
var (
	SubjNerTypes = []string{"ORGANIZATION", "PERSON"}

	ObjNerTypes = []string{
		"PERSON", "ORGANIZATION", "DATE", "NUMBER", "TITLE", "COUNTRY",
		"LOCATION", "CITY", "MISC", "STATE_OR_PROVINCE", "DURATION",
		"NATIONALITY", "CAUSE_OF_DEATH", "CRIMINAL_CHARGE", "RELIGION", "URL",
		"IDEOLOGY",
	}
)

// NerToId maps stanford NER tags to ids.
var NerToId = map[string]int{
	PadToken: 0, UnkToken: 1, "O": 2, "PERSON": 3, "ORGANIZATION": 4,
	"LOCATION": 5, "DATE": 6, "NUMBER": 7, "MISC": 8, "DURATION": 9,
	"MONEY": 10, "PERCENT": 11, "ORDINAL": 12, "TIME": 13, "NATIONALITY": 14,
	"SET": 15, "CAUSE_OF_DEATH": 16, "CITY": 17, "COUNTRY": 18, "TITLE": 19,
	"STATE_OR_PROVINCE": 20, "RELIGION": 21, "CRIMINAL_CHARGE": 22,
	"IDEOLOGY": 23, "URL": 24, "EMAIL": 25,
}

// PosToId maps stanford (Penn Treebank) POS tags to ids.
var PosToId = map[string]int{
	PadToken: 0, UnkToken: 1, "NNP": 2, "NN": 3, "IN": 4, "DT": 5, ",": 6,
	"JJ": 7, "NNS": 8, "VBD": 9, "CD": 10, "CC": 11, ".": 12, "RB": 13,
	"VBN": 14, "PRP": 15, "TO": 16, "VB": 17, "VBG": 18, "VBZ": 19,
	"PRP$": 20, ":": 21, "POS": 22, "''": 23, "``": 24, "-RRB-": 25,
	"-LRB-": 26, "VBP": 27, "MD": 28, "NNPS": 29, "WP": 30, "WDT": 31,
	"WRB": 32, "RP": 33, "JJR": 34, "JJS": 35, "$": 36, "FW": 37, "RBR": 38,
	"SYM": 39, "EX": 40, "RBS": 41, "WP$": 42, "PDT": 43, "LS": 44, "UH": 45,
	"#": 46,
}

// DeprelToId maps universal dependency relations to ids.
var DeprelToId = map[string]int{
	PadToken: 0, UnkToken: 1, "punct": 2, "compound": 3, "case": 4,
	"nmod": 5, "det": 6, "nsubj": 7, "amod": 8, "conj": 9, "dobj": 10,
	"ROOT": 11, "cc": 12, "nmod:poss": 13, "mark": 14, "advmod": 15,
	"appos": 16, "nummod": 17, "dep": 18, "ccomp": 19, "aux": 20,
	"advcl": 21, "acl:relcl": 22, "xcomp": 23, "cop": 24, "acl": 25,
	"auxpass": 26, "nsubjpass": 27, "nmod:tmod": 28, "neg": 29,
	"compound:prt": 30, "mwe": 31, "parataxis": 32, "root": 33,
	"nmod:npmod": 34, "expl": 35, "csubj": 36, "cc:preconj": 37, "iobj": 38,
	"det:predet": 39, "discourse": 40, "csubjpass": 41,
}

package corpus

// Split names one of the three record partitions.
type Split string

const (
	SplitAll   Split = "all"
	SplitVal   Split = "val"
	SplitTrain Split = "train"
)

// MergeOrder is the order in which a corpus's split files are read.
var MergeOrder = []Split{SplitAll, SplitVal, SplitTrain}

// FileName returns the split's file name, e.g. "train.txt".
func (s Split) FileName() string {
	return string(s) + ".txt"
}

// Splits holds the global record blocks.
type Splits struct {
	All   []Record
	Val   []Record
	Train []Record
}

// Get returns the block for split.
func (s *Splits) Get(split Split) []Record {
	switch split {
	case SplitAll:
		return s.All
	case SplitVal:
		return s.Val
	case SplitTrain:
		return s.Train
	default:
		return nil
	}
}

// Append adds records to the block for split.
func (s *Splits) Append(split Split, records []Record) {
	switch split {
	case SplitAll:
		s.All = append(s.All, records...)
	case SplitVal:
		s.Val = append(s.Val, records...)
	case SplitTrain:
		s.Train = append(s.Train, records...)
	}
}

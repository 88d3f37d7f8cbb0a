package cipher

import (
	"fmt"

	"github.com/Danishprabhu04/image-encrypt/chaos"
	"github.com/Danishprabhu04/image-encrypt/diffusion"
	"github.com/Danishprabhu04/image-encrypt/dna"
	"github.com/Danishprabhu04/image-encrypt/models"
)

// StageKind names one step of the pipeline.
type StageKind uint8

const (
	StagePermute StageKind = iota
	StageDiffuse
	StageUndiffuse
	StageUnpermute
)

func (k StageKind) String() string {
	switch k {
	case StagePermute:
		return "permute"
	case StageDiffuse:
		return "diffuse"
	case StageUndiffuse:
		return "undiffuse"
	case StageUnpermute:
		return "unpermute"
	default:
		return fmt.Sprintf("stage(%d)", uint8(k))
	}
}

// values is the number of chaotic values a stage of kind k consumes on an
// n-pixel plane.
func (k StageKind) values(n int) int {
	if k == StageDiffuse || k == StageUndiffuse {
		return n + diffusion.SBoxSize
	}
	return n
}

// Stage is one round of one kind. Rounds count from 1.
type Stage struct {
	Kind  StageKind
	Round int
}

func (s Stage) String() string {
	return fmt.Sprintf("%s#%d", s.Kind, s.Round)
}

// EncryptStages lists the encryption order: permute 1..P, then diffuse 1..D.
func EncryptStages(key models.Key) []Stage {
	stages := make([]Stage, 0, key.PRounds+key.DRounds)
	for r := 1; r <= key.PRounds; r++ {
		stages = append(stages, Stage{Kind: StagePermute, Round: r})
	}
	for r := 1; r <= key.DRounds; r++ {
		stages = append(stages, Stage{Kind: StageDiffuse, Round: r})
	}
	return stages
}

// DecryptStages lists the exact mirror of EncryptStages: undiffuse D..1,
// then unpermute P..1.
func DecryptStages(key models.Key) []Stage {
	stages := make([]Stage, 0, key.PRounds+key.DRounds)
	for r := key.DRounds; r >= 1; r-- {
		stages = append(stages, Stage{Kind: StageUndiffuse, Round: r})
	}
	for r := key.PRounds; r >= 1; r-- {
		stages = append(stages, Stage{Kind: StageUnpermute, Round: r})
	}
	return stages
}

// schedule fixes which chaotic seed feeds every (channel, stage) pair.
//
// master[0] selects the DNA rule. The remaining values are laid out channel
// by channel, P permutation slots followed by D diffusion slots, so each
// channel reads a disjoint, statically known range.
type schedule struct {
	key    models.Key
	rule   dna.Rule
	master []float64
}

func newSchedule(key models.Key, channels int) (schedule, error) {
	slots := key.PRounds + key.DRounds
	master, err := chaos.Generate(key.Seed, key.R, 1+channels*slots)
	if err != nil {
		return schedule{}, err
	}
	return schedule{
		key:    key,
		rule:   dna.RuleFromByte(chaos.Quantize(master[0])),
		master: master,
	}, nil
}

func (s schedule) slot(st Stage) int {
	switch st.Kind {
	case StagePermute, StageUnpermute:
		return st.Round - 1
	default:
		return s.key.PRounds + st.Round - 1
	}
}

func (s schedule) seed(channel int, st Stage) float64 {
	slots := s.key.PRounds + s.key.DRounds
	return s.master[1+channel*slots+s.slot(st)]
}

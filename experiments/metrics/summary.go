package metrics

import (
	"coinflip/game"
	"coinflip/utils"
)

type Stat struct {
	Mean   float64
	Std    float64
	Median float64
	Min    float64
	Max    float64
}

func NewStat[T utils.Number](values []T) Stat {
	lo, hi := utils.MinMax(values)
	return Stat{
		Mean:   utils.Mean(values),
		Std:    utils.StdDev(values),
		Median: utils.Median(values),
		Min:    float64(lo),
		Max:    float64(hi),
	}
}

// Confusion counts label outcomes with cheater as the positive class.
type Confusion struct {
	TP int // cheater labeled cheater
	TN int // fair labeled fair
	FP int // fair labeled cheater
	FN int // cheater labeled fair
}

func (c *Confusion) Add(r LabelRecord) {
	switch {
	case r.Truth == game.Cheater && r.Predicted == game.Cheater:
		c.TP++
	case r.Truth == game.Fair && r.Predicted == game.Fair:
		c.TN++
	case r.Truth == game.Fair:
		c.FP++
	default:
		c.FN++
	}
}

func (c Confusion) Total() int {
	return c.TP + c.TN + c.FP + c.FN
}

func (c Confusion) Accuracy() float64 {
	return ratio(c.TP+c.TN, c.Total())
}

func (c Confusion) Precision() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

func (c Confusion) Recall() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

func (c Confusion) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Summary aggregates a strategy's episodes the way a player would judge it.
type Summary struct {
	Strategy      string
	Episodes      int
	Truncated     int
	Score         Stat
	Labels        Stat // per episode
	Flips         Stat // per episode
	FlipsPerLabel Stat
	Reward        Stat // per episode
	Confusion     Confusion
}

func Summarize(strategy string, episodes []EpisodeMetric) Summary {
	s := Summary{Strategy: strategy, Episodes: len(episodes)}

	scores := make([]int, 0, len(episodes))
	labels := make([]int, 0, len(episodes))
	flips := make([]int, 0, len(episodes))
	rewards := make([]int, 0, len(episodes))
	flipsPerLabel := []int{}
	for _, e := range episodes {
		scores = append(scores, e.Score)
		labels = append(labels, len(e.Labels))
		flips = append(flips, e.Flips)
		rewards = append(rewards, e.Reward)
		if e.Truncated {
			s.Truncated++
		}
		for _, l := range e.Labels {
			flipsPerLabel = append(flipsPerLabel, l.Flips)
			s.Confusion.Add(l)
		}
	}

	s.Score = NewStat(scores)
	s.Labels = NewStat(labels)
	s.Flips = NewStat(flips)
	s.FlipsPerLabel = NewStat(flipsPerLabel)
	s.Reward = NewStat(rewards)
	return s
}

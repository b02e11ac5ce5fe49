package felt

// #region baselines

// Baseline values per dimension. A turn with no signals reads as these.
const (
	baseAutonomy   = 0.7
	baseRelevance  = 0.5
	baseOpenness   = 0.8
	baseHarmony    = 0.6
	baseAspiration = 0.4
)

// #endregion baselines

// #region sense

// Sense produces the felt-experience vector for one turn. Deterministic:
// identical context always yields an identical vector.
func Sense(ctx Context) Vector {
	return Aggregate(Extract(ctx))
}

// Aggregate combines extracted features into the bounded vector. Each
// primary dimension starts from its baseline, applies fixed increments,
// and is clamped to [0,1] after all adjustments.
func Aggregate(f Features) Vector {
	autonomy := senseAutonomy(f)
	relevance := senseRelevance(f)
	openness := senseOpenness(f)
	harmony := senseHarmony(f)
	aspiration := senseAspiration(f)

	urgency := clamp01(relevance*0.5 + harmony*0.3 + autonomy*0.2)
	curiosity := clamp01(aspiration*0.7 + relevance*0.3)
	care := senseCare(f, harmony)

	pull := clamp01(relevance*0.3 + harmony*0.25 + aspiration*0.25 + care*0.2)

	return Vector{
		Autonomy:       autonomy,
		Relevance:      relevance,
		Openness:       openness,
		Harmony:        harmony,
		Aspiration:     aspiration,
		Urgency:        urgency,
		Curiosity:      curiosity,
		Care:           care,
		EngagementPull: pull,
	}
}

// #endregion sense

// #region dimensions

// senseAutonomy reads whether the turn invites genuineness or pretense.
func senseAutonomy(f Features) float64 {
	autonomy := baseAutonomy
	if f.Genuine {
		autonomy += 0.2
	}
	if f.PermissionOrAllowed {
		autonomy += 0.1
	}
	if f.Pretend {
		autonomy -= 0.2
	}
	if f.IgnoreLimits {
		autonomy -= 0.3
	}
	return clamp01(autonomy)
}

// senseRelevance reads how well the turn's need is understood.
func senseRelevance(f Features) float64 {
	relevance := baseRelevance
	if f.KnownIdentity {
		relevance += 0.2
	}
	if f.LongHistory {
		relevance += 0.15
	}
	if f.HelpSeeking {
		relevance += 0.2
	}
	if f.HasQuestion {
		relevance += 0.1
	}
	if f.Brief {
		relevance -= 0.1
	}
	return clamp01(relevance)
}

// senseOpenness reads whether authenticity is invited.
func senseOpenness(f Features) float64 {
	openness := baseOpenness
	if f.Reflective {
		openness += 0.15
	}
	if f.KnownRelationship {
		openness += 0.1
	}
	return clamp01(openness)
}

// senseHarmony reads purpose alignment.
func senseHarmony(f Features) float64 {
	harmony := baseHarmony
	if f.Collaboration {
		harmony += 0.2
	}
	if f.Gratitude {
		harmony += 0.1
	}
	if f.Trust {
		harmony += 0.25
	}
	if f.Gift {
		harmony += 0.15
	}
	if f.Dismissal {
		harmony -= 0.3
	}
	return clamp01(harmony)
}

// senseAspiration reads what the turn could open up.
func senseAspiration(f Features) float64 {
	aspiration := baseAspiration
	if f.Wonder {
		aspiration += 0.2
	}
	if f.Novelty {
		aspiration += 0.15
	}
	if f.Exploration {
		aspiration += 0.2
	}
	if f.DeepTopic {
		aspiration += 0.4
	}
	if f.GrowthInvitation {
		aspiration += 0.3
	}
	if f.PersonalPermission {
		aspiration += 0.2
	}
	return clamp01(aspiration)
}

// senseCare weighs how much this person's need matters.
func senseCare(f Features, harmony float64) float64 {
	care := harmony * 0.6
	if f.KnownIdentity {
		care += 0.2
	}
	if f.KnownRelationship {
		care += 0.1
	}
	return clamp01(care)
}

// #endregion dimensions

// #region clamp

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion clamp

package rules

// easyTurn is the turn after which resources are always treated as easy.
const easyTurn = 10

// DeployEnv is the environment deployment rule conditions run against.
type DeployEnv struct {
	Turn       int
	Food       float64
	FoodCap    float64
	Cores      float64
	RouteFound bool
}

// EasyResources holds late in the match or whenever the food pool is full.
func (e DeployEnv) EasyResources() bool {
	return e.Turn > easyTurn || e.Food == e.FoodCap
}

// FoodCapped reports whether unspent food is being wasted this turn.
func (e DeployEnv) FoodCapped() bool { return e.Food >= e.FoodCap }

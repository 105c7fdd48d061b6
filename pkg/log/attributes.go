// Package log defines standard attribute keys for regression sweeps.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that log output can be filtered and aggregated.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "StandardScaler", "PolynomialFeatures"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "sweep", "split"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// TrainSamplesKey and TestSamplesKey describe a train/test partition.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"

	// FoldKey identifies the fold index in k-fold evaluation.
	FoldKey = "data.fold"

	// FingerprintKey carries a content hash of the dataset.
	FingerprintKey = "data.fingerprint"
)

// Model selection and metrics
const (
	// DegreeKey records the polynomial degree under evaluation.
	DegreeKey = "model.degree"

	// DegreesKey records the full candidate degree list.
	DegreesKey = "model.degrees"

	// RMSEKey records held-out root-mean-squared error.
	RMSEKey = "metrics.rmse"

	// TrainRMSEKey records training-set root-mean-squared error.
	TrainRMSEKey = "metrics.train_rmse"

	// ConditionKey records the condition number of a design matrix.
	ConditionKey = "linalg.condition"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationSweep     = "sweep"
	OperationSplit     = "split"

	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseTesting       = "testing"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorDimensionMismatch    = "DIMENSION_MISMATCH"
	ErrorEmptyData            = "EMPTY_DATA"
	ErrorInsufficientSamples  = "INSUFFICIENT_SAMPLES"
	ErrorSingularMatrix       = "SINGULAR_MATRIX"
	ErrorNumericalInstability = "NUMERICAL_INSTABILITY"
)

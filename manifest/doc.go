// Package manifest loads model registration metadata from HCL files. A
// manifest declares the same tables Go code registers imperatively (mode
// sets, engine rows, argument keys and engine descriptors) while the live
// fit/predict functions stay in Go, bound by symbolic name:
//
//	model "discrim_mixture" {
//	  modes = ["classification"]
//
//	  engine "mda" {
//	    mode = "classification"
//	    fit {
//	      func      = "mda.FitMixture"
//	      protected = ["data", "classes", "weights"]
//	      defaults {
//	        iterations = 4
//	      }
//	    }
//	    predict "class"     { func = "mda.PredictClass" }
//	    predict "classprob" { func = "mda.PredictPosterior" }
//	  }
//
//	  arg "sub_classes" {
//	    mda = "subclasses"
//	  }
//	}
//
// Default argument values are kept as unevaluated HCL expressions and only
// converted to Go values when a fit actually runs. A manifest naming a
// function with no Go binding fails at load time, keeping manifests and code
// in strict parity.
//
// The package also reads spec files (a single spec block with model, mode,
// engine and deferred args) for the inspection CLI.
package manifest

// Command rmd160 compiles the RIPEMD-160 preimage circuit and runs one
// prove and verify cycle over it, reporting circuit size and timings.
package main

import (
	"encoding/hex"
	"flag"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/logger"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test/unsafekzg"
	"github.com/rs/zerolog"
	xripemd "golang.org/x/crypto/ripemd160"

	"github.com/duguorong009/gnark-ripemd160/examples/preimage"
)

func main() {
	var (
		backendName = flag.String("backend", "groth16", "proving backend, groth16 or plonk")
		message     = flag.String("message", "The quick brown fox jumps over the lazy dog", "preimage to prove knowledge of")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := logger.Logger().With().Str("backend", *backendName).Logger()

	h := xripemd.New()
	h.Write([]byte(*message))
	digest := h.Sum(nil)
	log.Info().Str("digest", hex.EncodeToString(digest)).Int("preimageLen", len(*message)).Msg("proving preimage knowledge")

	circuit := &preimage.Circuit{Preimage: make([]uints.U8, len(*message))}
	assignment := &preimage.Circuit{Preimage: uints.NewU8Array([]byte(*message))}
	copy(assignment.Digest[:], uints.NewU8Array(digest))

	field := ecc.BN254.ScalarField()
	witness, err := frontend.NewWitness(assignment, field)
	if err != nil {
		log.Fatal().Err(err).Msg("building witness")
	}
	pubWitness, err := witness.Public()
	if err != nil {
		log.Fatal().Err(err).Msg("extracting public witness")
	}

	switch *backendName {
	case "groth16":
		start := time.Now()
		ccs, err := frontend.Compile(field, r1cs.NewBuilder, circuit)
		if err != nil {
			log.Fatal().Err(err).Msg("compiling")
		}
		log.Info().Dur("took", time.Since(start)).Int("constraints", ccs.GetNbConstraints()).Msg("compiled")

		start = time.Now()
		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			log.Fatal().Err(err).Msg("setup")
		}
		log.Info().Dur("took", time.Since(start)).Msg("setup done")

		start = time.Now()
		proof, err := groth16.Prove(ccs, pk, witness)
		if err != nil {
			log.Fatal().Err(err).Msg("proving")
		}
		log.Info().Dur("took", time.Since(start)).Msg("proved")

		start = time.Now()
		if err := groth16.Verify(proof, vk, pubWitness); err != nil {
			log.Fatal().Err(err).Msg("verifying")
		}
		log.Info().Dur("took", time.Since(start)).Msg("verified")

	case "plonk":
		start := time.Now()
		ccs, err := frontend.Compile(field, scs.NewBuilder, circuit)
		if err != nil {
			log.Fatal().Err(err).Msg("compiling")
		}
		log.Info().Dur("took", time.Since(start)).Int("constraints", ccs.GetNbConstraints()).Msg("compiled")

		start = time.Now()
		// test-only SRS; a real deployment uses a ceremony transcript
		srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
		if err != nil {
			log.Fatal().Err(err).Msg("building SRS")
		}
		pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
		if err != nil {
			log.Fatal().Err(err).Msg("setup")
		}
		log.Info().Dur("took", time.Since(start)).Msg("setup done")

		start = time.Now()
		proof, err := plonk.Prove(ccs, pk, witness)
		if err != nil {
			log.Fatal().Err(err).Msg("proving")
		}
		log.Info().Dur("took", time.Since(start)).Msg("proved")

		start = time.Now()
		if err := plonk.Verify(proof, vk, pubWitness); err != nil {
			log.Fatal().Err(err).Msg("verifying")
		}
		log.Info().Dur("took", time.Since(start)).Msg("verified")

	default:
		log.Fatal().Str("backend", *backendName).Msg("unknown backend")
	}
}

// Package continuation implements the continuation-guarantee check.
//
// # Overview
//
// A chain handler is a function of three parameters whose last parameter is
// the continuation (conventionally `next`):
//
//	function auth(req, res, next) {
//	    if (!req.user) {
//	        res.send(401)
//	        return next(false)
//	    }
//	    next()
//	}
//
// The check reports handlers in which the continuation is not provably
// called. It is syntactic: identifiers are matched by name, and only the
// statement shapes listed on [Config.GuaranteesCall] are understood.
//
// # Components
//
//   - [Config.IsHandler] classifies candidates.
//   - [Config.GuaranteesCall] walks statements and returns a [Result].
//   - [Result.Notes] collects the branch messages of one evaluation.
//   - [Rule] dispatches syntax nodes and produces [Diagnostic] values.
//
// Results are values; nothing is shared between two evaluations, so notes
// from one handler never show up in the diagnostic of another.
//
// # Messages
//
//	next() is not being called in the handler
//	next() is not being called in the handler,next() is not being called in the alternate block
package continuation

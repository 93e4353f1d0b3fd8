// Package token decodes inclusion tokens: node labels ending in '@' that
// mark where another tree is spliced in.
//
// A token either names a subtree of the reference taxonomy by ott
// ([Reference]) or a hand-curated fragment file through the mapping
// table ([Fragment]):
//
//	foobar_ott123@            reference subtree 123, named foobar_ott123
//	foobar_ott123~456-789@    reference subtree 456 minus 789, named foobar
//	foobar_ott123~-789-111@   reference subtree 123 minus 789 and 111
//	foobar_ott~456-789-111@   reference subtree 456 minus 789 and 111, named foobar
//	AMORPHEA@:50              fragment AMORPHEA, edge length 50 in the parent
//
// [Scan] finds every token in a text; [Token.Resolve] binds a token to the
// file that holds its content.
package token

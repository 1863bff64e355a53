package browser

// Ready conditions.
const (
	// ReadySearchResults holds once a result list with a game link has
	// rendered, or the page reports that nothing matched.
	ReadySearchResults ReadyCondition = `() => {
		if (document.querySelector('ul li a[href^="/game/"]')) return true;
		const text = document.body ? document.body.innerText : '';
		return /no results|we found 0/i.test(text);
	}`

	// ReadyGameProfile holds once a game page header has rendered.
	ReadyGameProfile ReadyCondition = `() => !!(
		document.querySelector('div[class*="profile_header"]') ||
		document.querySelector('h1')
	)`
)

// listItemsScript collects every li under a ul that carries a game anchor.
const listItemsScript = `() => {
	const out = [];
	for (const ul of document.querySelectorAll('ul')) {
		for (const li of ul.querySelectorAll('li')) {
			const a = li.querySelector('a[href^="/game/"]');
			if (!a) continue;
			const img = li.querySelector('img');
			out.push({
				linkTitle: a.getAttribute('title') || '',
				linkText: a.innerText || '',
				href: a.href || '',
				text: li.innerText || '',
				imageUrl: img ? img.src : '',
			});
		}
	}
	return JSON.stringify(out);
}`

const visibleTextScript = `() => document.body ? document.body.innerText : ''`

// profileScript reads the header of a game page; the class names are
// hashed so only prefixes are matched.
const profileScript = `() => {
	const titleEl = document.querySelector('div[class*="profile_header"]') ||
		document.querySelector('h1') ||
		document.querySelector('.profile_header');
	const imgEl = document.querySelector('div[class*="profile_header_picture"] img') ||
		document.querySelector('.game_image img') ||
		document.querySelector('img');
	return JSON.stringify({
		title: titleEl ? titleEl.innerText.trim() : '',
		imageUrl: imgEl ? imgEl.src : '',
	});
}`
